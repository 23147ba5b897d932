package ar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	uaIPhone15  = "Mozilla/5.0 (iPhone; CPU iPhone OS 15_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.4 Mobile/15E148 Safari/604.1"
	uaIPhone11  = "Mozilla/5.0 (iPhone; CPU iPhone OS 11_2 like Mac OS X) AppleWebKit/604.4.7 (KHTML, like Gecko) Version/11.0 Mobile/15C114 Safari/604.1"
	uaPixel     = "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36"
	uaOldChrome = "Mozilla/5.0 (Linux; Android 8.0; SM-G950F) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/70.0.3538.110 Mobile Safari/537.36"
	uaFirefoxA  = "Mozilla/5.0 (Android 13; Mobile; rv:109.0) Gecko/116.0 Firefox/116.0"
	uaDesktop   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36"
	uaBlackBerr = "Mozilla/5.0 (BlackBerry; U; BlackBerry 9900; en) AppleWebKit/534.11+ (KHTML, like Gecko) Version/7.1.0.346 Mobile Safari/534.11+"
)

func TestDetectDevice(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want Device
	}{
		{"modern iPhone", uaIPhone15, Device{Mobile: true, IOS: true, SupportsAR: true}},
		{"old iPhone", uaIPhone11, Device{Mobile: true, IOS: true, SupportsAR: false}},
		{"modern Android Chrome", uaPixel, Device{Mobile: true, Android: true, SupportsAR: true}},
		{"old Android Chrome", uaOldChrome, Device{Mobile: true, Android: true, SupportsAR: false}},
		{"Android Firefox", uaFirefoxA, Device{Mobile: true, Android: true, SupportsAR: true}},
		{"desktop", uaDesktop, Device{}},
		{"other mobile", uaBlackBerr, Device{Mobile: true}},
		{"empty", "", Device{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDevice(tt.ua))
		})
	}
}

func TestGuidance(t *testing.T) {
	assert.Equal(t, "📱 Tap the AR button to view this artwork in your space!", Guidance(DetectDevice(uaPixel)))
	assert.Equal(t, "📱 AR may not be supported on your device", Guidance(DetectDevice(uaOldChrome)))
	assert.Equal(t, "📱 For best AR experience, open this on a mobile device", Guidance(DetectDevice(uaDesktop)))
}

func TestSceneViewerIntent(t *testing.T) {
	got := SceneViewerIntent("https://gallery.example.com/artwork/4/glb", "Mona Lisa", "https://gallery.example.com/artwork/4")
	assert.Equal(t,
		"intent://arvr.google.com/scene-viewer/1.2?file=https%3A%2F%2Fgallery.example.com%2Fartwork%2F4%2Fglb&mode=ar_preferred&title=Mona+Lisa"+
			"#Intent;scheme=https;package=com.google.ar.core;action=android.intent.action.VIEW;"+
			"S.browser_fallback_url=https%3A%2F%2Fgallery.example.com%2Fartwork%2F4;end;",
		got)

	assert.NotContains(t, SceneViewerIntent("https://x/glb", "", ""), "browser_fallback_url")
}
