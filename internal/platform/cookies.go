package platform

import (
	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register all browser cookie stores
)

// Cookie probing constants
const (
	CookieDomain = "youtube.com"
)

// FindCookieBrowser probes installed browser cookie stores and returns the
// name of the first browser holding valid cookies for the given domain.
// Age-restricted content needs authenticated cookies; the returned name is
// passed through to the extraction tool as opaque configuration. Returns
// false when no browser has usable cookies.
func FindCookieBrowser(domain string) (string, bool) {
	if domain == "" {
		domain = CookieDomain
	}

	for _, store := range kooky.FindAllCookieStores() {
		cookies, err := store.ReadCookies(kooky.Valid, kooky.DomainHasSuffix(domain))
		if err != nil {
			continue
		}
		if len(cookies) > 0 {
			return store.Browser(), true
		}
	}
	return "", false
}
