package aasahttp

import (
	"net/http"
	"strconv"
)

func pretty(r *http.Request) bool {
	pretty, _ := strconv.ParseBool(r.URL.Query().Get("pretty"))
	return pretty
}
