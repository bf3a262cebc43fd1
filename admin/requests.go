package admin

import (
	"net/http"

	"github.com/techipro/konnect-admin/client"
)

func getRequest(path string, query map[string]string) client.Request {
	return client.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	}
}

func jsonRequest(method string, path string, body interface{}) client.Request {
	return client.Request{
		Method: method,
		Path:   path,
		Body:   body,
	}
}
