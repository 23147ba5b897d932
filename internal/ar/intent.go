package ar

import (
	"net/url"
	"strings"
)

// SceneViewerIntent builds the Android intent URL that opens assetURL in
// Google Scene Viewer in AR mode, falling back to fallbackURL when ARCore
// is missing.
func SceneViewerIntent(assetURL, title, fallbackURL string) string {
	q := url.Values{}
	q.Set("file", assetURL)
	q.Set("mode", "ar_preferred")
	if title != "" {
		q.Set("title", title)
	}

	var b strings.Builder
	b.WriteString("intent://arvr.google.com/scene-viewer/1.2?")
	b.WriteString(q.Encode())
	b.WriteString("#Intent;scheme=https;package=com.google.ar.core;action=android.intent.action.VIEW;")
	if fallbackURL != "" {
		b.WriteString("S.browser_fallback_url=")
		b.WriteString(url.QueryEscape(fallbackURL))
		b.WriteString(";")
	}
	b.WriteString("end;")
	return b.String()
}
