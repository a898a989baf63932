package folio

import "embed"

// PublicAssets holds the stylesheet, favicon, and icon files served under
// /public/.
//
//go:embed public
var PublicAssets embed.FS
