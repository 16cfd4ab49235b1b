// Package fetch issues single HTTP requests against a fixed endpoint.
//
// An Executor is bound to one endpoint when it is created and never changes
// it. Each call builds one request from caller-supplied Options, performs one
// round trip and reports the outcome. Failures never escape as panics: Do
// returns them as *Error values and Execute folds them into a Result.
//
// # Usage
//
//	exec := fetch.New("http://localhost:8000/a.json")
//
//	res := exec.Execute(ctx, fetch.Options{
//	    Method: http.MethodGet,
//	    Mode:   fetch.ModeNoCORS,
//	    Cache:  fetch.CacheDefault,
//	})
//	if !res.OK() {
//	    return res.Err
//	}
//	fmt.Println(res.Response.Status, res.Response.Text())
//
// # Custom Transports
//
// Any type with a Do(*http.Request) (*http.Response, error) method can be
// injected with WithHTTPClient. The standard *http.Client satisfies it.
//
// # Version
//
// Current version: 1.0.0. The Version constant is reported by
// "whyql --version".
package fetch
