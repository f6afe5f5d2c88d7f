package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Consecutive guards returning the same value can be merged with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)
}

// gatewayErrors keeps sentinel comparisons working through %w wrapping.
func gatewayErrors(m dsl.Matcher) {
	m.Match(`$err == $sentinel`, `$err != $sentinel`).
		Where(m["err"].Type.Is(`error`) &&
			m["sentinel"].Text.Matches(`^(tool|backend|config)\.Err[A-Z]\w*$`)).
		Report(`compare with errors.Is($err, $sentinel); dispatch errors are wrapped`)

	m.Match(`fmt.Errorf($msg, $*_, $err)`).
		Where(m["err"].Type.Is(`error`) && !m["msg"].Text.Matches(`%w`)).
		Report(`wrap the cause with %w so callers can use errors.Is`)
}

// gatewayOutput routes diagnostics through slog outside cmd/.
func gatewayOutput(m dsl.Matcher) {
	m.Match(`fmt.Println($*_)`, `fmt.Printf($*_)`, `fmt.Print($*_)`, `log.Printf($*_)`, `log.Println($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/`)).
		Report(`use the injected *slog.Logger instead of printing`)
}

// backendCalls keeps every outbound request bounded and cancellable.
func backendCalls(m dsl.Matcher) {
	m.Match(`http.DefaultClient`, `http.Post($*_)`, `http.Get($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/infra/backend`)).
		Report(`use the client's configured *http.Client with a request context`)

	m.Match(`http.NewRequest($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/infra/backend`)).
		Report(`use http.NewRequestWithContext so the inbound call can cancel the backend call`)
}
