package httpclient

// TokenSourceFunc adapts a plain function to a TokenSource.
type TokenSourceFunc func() (string, bool)

func (f TokenSourceFunc) Token() (string, bool) { return f() }
