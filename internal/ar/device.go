package ar

import (
	"regexp"
	"strconv"
)

var (
	mobileRE  = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)
	iosRE     = regexp.MustCompile(`iPad|iPhone|iPod`)
	androidRE = regexp.MustCompile(`Android`)
	iosVerRE  = regexp.MustCompile(`OS ([0-9]+)_`)
	chromeRE  = regexp.MustCompile(`Chrome/([0-9]+)`)
)

// Minimum platform versions with a native AR viewer.
const (
	minIOSVersion    = 12
	minChromeVersion = 79
)

// Device is the advisory classification of a user agent.
type Device struct {
	Mobile     bool
	IOS        bool
	Android    bool
	SupportsAR bool
}

// DetectDevice classifies a user agent string. The result only shapes
// guidance text; activation is attempted regardless.
func DetectDevice(userAgent string) Device {
	d := Device{
		Mobile:  mobileRE.MatchString(userAgent),
		IOS:     iosRE.MatchString(userAgent),
		Android: androidRE.MatchString(userAgent),
	}
	d.SupportsAR = supportsAR(d, userAgent)
	return d
}

func supportsAR(d Device, userAgent string) bool {
	if d.IOS {
		if v, ok := majorVersion(iosVerRE, userAgent); ok {
			return v >= minIOSVersion
		}
	}
	if d.Android {
		if v, ok := majorVersion(chromeRE, userAgent); ok {
			return v >= minChromeVersion
		}
	}
	return d.Android || d.IOS
}

func majorVersion(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// Guidance is the instruction line shown under the AR button.
func Guidance(d Device) string {
	switch {
	case d.Mobile && d.SupportsAR:
		return "📱 Tap the AR button to view this artwork in your space!"
	case d.Mobile:
		return "📱 AR may not be supported on your device"
	default:
		return "📱 For best AR experience, open this on a mobile device"
	}
}
