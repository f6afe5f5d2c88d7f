// Package posts declares the LinkedIn post-agent tool catalog: eight tools,
// each bound to one backend endpoint.
package posts

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/arno-dev/postagent-mcp/internal/domain/tool"
)

const (
	ToolIdeas        = "posts_ideas"
	ToolOutline      = "posts_outline"
	ToolDraft        = "posts_draft"
	ToolPolish       = "posts_polish"
	ToolHashtagize   = "posts_hashtagize"
	ToolImagePrompts = "posts_image_prompts"
	ToolPackage      = "posts_package"
	ToolFull         = "posts_full"
)

const (
	PathIdeas        = "/posts/ideas"
	PathOutline      = "/posts/outline"
	PathDraft        = "/posts/draft"
	PathPolish       = "/posts/polish"
	PathHashtagize   = "/posts/hashtagize"
	PathImagePrompts = "/posts/image-prompts"
	PathPackage      = "/posts/package"
	PathFull         = "/posts/full"
)

// Text-content members the backend may return, in order of preference.
const (
	fieldFinalText = "finalText"
	fieldDraft     = "draft"
)

// PackageInput is the body of posts_package.
type PackageInput struct {
	Text        string   `json:"text"`
	Hashtags    []string `json:"hashtags,omitzero"`
	ImagePrompt *string  `json:"imagePrompt,omitempty"`
	Constraints *string  `json:"constraints,omitempty"`
}

// FullPostInput is the body of posts_full. MaxHashtags keeps the caller's
// number literal so the backend receives the same digits.
type FullPostInput struct {
	Topic       string       `json:"topic"`
	Audience    string       `json:"audience"`
	Goal        string       `json:"goal"`
	Tone        *string      `json:"tone,omitempty"`
	Constraints *string      `json:"constraints,omitempty"`
	MaxHashtags *json.Number `json:"maxHashtags,omitempty"`
	Style       *string      `json:"style,omitempty"`
}

// PackageSchema is the declared input contract of posts_package.
func PackageSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"text"},
		Properties: map[string]*jsonschema.Schema{
			"text": {
				Type:        "string",
				MinLength:   jsonschema.Ptr(1),
				Description: "Post text to package. Required.",
			},
			"hashtags": {
				Type:  "array",
				Items: &jsonschema.Schema{Type: "string"},
			},
			"imagePrompt": {Type: "string"},
			"constraints": {Type: "string"},
		},
	}
}

// FullPostSchema is the declared input contract of posts_full.
func FullPostSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"topic", "audience", "goal"},
		Properties: map[string]*jsonschema.Schema{
			"topic":       {Type: "string", Description: "Main topic, e.g. 'flaky tests in CI'"},
			"audience":    {Type: "string", Description: "Target audience, e.g. 'senior SDETs'"},
			"goal":        {Type: "string", Description: "Goal, e.g. 'practical tip post'"},
			"tone":        {Type: "string"},
			"constraints": {Type: "string"},
			"maxHashtags": {Type: "number"},
			"style":       {Type: "string"},
		},
	}
}

func passthrough(name, path, title, description, bodyDoc, sentence string) tool.Definition {
	return tool.Definition{
		Name:        name,
		Title:       title,
		Description: description,
		BackendPath: path,
		Schema:      tool.AnyJSON{BodyDescription: bodyDoc},
		Text:        tool.StaticText(sentence),
	}
}

// Definitions returns the full catalog in advertisement order.
func Definitions() []tool.Definition {
	return []tool.Definition{
		passthrough(ToolIdeas, PathIdeas,
			"Generate LinkedIn post ideas",
			"Calls the /posts/ideas endpoint on the LinkedIn post agent. Pass the exact JSON body that the backend expects in `body`.",
			"JSON body for /posts/ideas. Use the same fields as IdeasInput in the backend service.",
			"Generated LinkedIn post ideas from /posts/ideas."),
		passthrough(ToolOutline, PathOutline,
			"Generate outline for a LinkedIn post",
			"Calls the /posts/outline endpoint. Provide OutlineInput JSON in `body`.",
			"JSON body for /posts/outline (OutlineInput).",
			"Generated outline from /posts/outline."),
		passthrough(ToolDraft, PathDraft,
			"Generate full LinkedIn post draft",
			"Calls the /posts/draft endpoint. Provide DraftInput JSON in `body`.",
			"JSON body for /posts/draft (DraftInput).",
			"Generated draft from /posts/draft."),
		passthrough(ToolPolish, PathPolish,
			"Polish an existing LinkedIn post",
			"Calls the /posts/polish endpoint. Provide PolishInput JSON in `body`.",
			"JSON body for /posts/polish (PolishInput).",
			"Polished draft using /posts/polish."),
		passthrough(ToolHashtagize, PathHashtagize,
			"Generate hashtags for a post",
			"Calls the /posts/hashtagize endpoint. Provide HashtagizeInput JSON in `body`.",
			"JSON body for /posts/hashtagize (HashtagizeInput).",
			"Generated hashtags from /posts/hashtagize."),
		passthrough(ToolImagePrompts, PathImagePrompts,
			"Generate image prompts for the post",
			"Calls the /posts/image-prompts endpoint. Provide ImagePromptsInput JSON in `body`.",
			"JSON body for /posts/image-prompts (ImagePromptsInput).",
			"Generated image prompts from /posts/image-prompts."),
		{
			Name:        ToolPackage,
			Title:       "Package text + hashtags + image prompt",
			Description: "Calls the /posts/package endpoint. Provide PackageInput JSON, either directly or wrapped in `body`.",
			BackendPath: PathPackage,
			Schema:      tool.MustStrict[PackageInput](PackageSchema()),
			Text:        tool.PreferFields("Packaged LinkedIn post.", fieldFinalText, fieldDraft),
		},
		{
			Name:  ToolFull,
			Title: "Generate a full LinkedIn post (idea → draft → hashtags → image prompt)",
			Description: "High-level tool that orchestrates multiple steps in the backend. " +
				"Provide topic, audience, goal, and optional tone/constraints.",
			BackendPath: PathFull,
			Schema:      tool.MustStrict[FullPostInput](FullPostSchema()),
			Text:        tool.PreferFields("Full LinkedIn post generated via /posts/full.", fieldFinalText, fieldDraft),
		},
	}
}

// NewRegistry builds a registry holding the full catalog.
func NewRegistry() *tool.Registry {
	r := tool.NewRegistry()
	r.MustRegister(Definitions()...)
	return r
}
