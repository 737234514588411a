package aasa

// AppleAppSiteAssociation is the document served at
// /apple-app-site-association and /.well-known/apple-app-site-association.
//
// See https://developer.apple.com/documentation/xcode/supporting-associated-domains.
type AppleAppSiteAssociation struct {
	AppLinks AppLinks `json:"applinks"`
}

// AppLinks' fields are never omitted; unset
// fields are encoded as [] or {}.
type AppLinks struct {
	Apps           []string       `json:"apps"`
	Details        []Detail       `json:"details"`
	WebCredentials map[string]any `json:"webcredentials"`
}
