package handler

import "net/http"

type cookieResponse struct {
	next    Response
	cookies []*http.Cookie
}

func (c cookieResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for _, ck := range c.cookies {
		if ck != nil {
			http.SetCookie(w, ck)
		}
	}
	return c.next.Render(w, r)
}

// WithCookies sets cookies on the response before resp renders. Nil cookies
// are ignored.
func WithCookies(resp Response, cookies ...*http.Cookie) Response {
	if len(cookies) == 0 {
		return resp
	}
	return cookieResponse{next: resp, cookies: cookies}
}
