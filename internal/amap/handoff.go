package amap

import (
	"net/url"
	"regexp"

	"github.com/foodmap/foodmap/pkg/errors"
	"github.com/foodmap/foodmap/pkg/places"
)

// Platform is the device family derived from the reported identification
// string. It selects a hand-off URI family and nothing else.
type Platform int

// Closed set of platform classifications.
const (
	PlatformOther Platform = iota
	PlatformIOS
	PlatformAndroid
)

// String implements fmt.Stringer.
func (p Platform) String() string {
	switch p {
	case PlatformIOS:
		return "ios"
	case PlatformAndroid:
		return "android"
	default:
		return "other"
	}
}

// handoffSource identifies this application in hand-off URIs.
const handoffSource = "foodmap"

var (
	iosPattern     = regexp.MustCompile(`(?i)iPhone|iPad|iPod`)
	androidPattern = regexp.MustCompile(`(?i)Android`)
	mobilePattern  = regexp.MustCompile(`(?i)Android|iPhone|iPad|iPod|Mobile`)
)

// DetectPlatform classifies a user-agent string. Pure; unrecognized strings
// classify as PlatformOther.
func DetectPlatform(userAgent string) Platform {
	switch {
	case iosPattern.MatchString(userAgent):
		return PlatformIOS
	case androidPattern.MatchString(userAgent):
		return PlatformAndroid
	default:
		return PlatformOther
	}
}

// IsMobile reports whether the user-agent string looks like a mobile device.
func IsMobile(userAgent string) bool {
	return mobilePattern.MatchString(userAgent)
}

// HandoffURI builds a deep link that opens the native map application for
// the destination, selecting the URI family by platform. Pure function, no
// I/O. walking maps to "walk"/2; every other mode maps to "drive"/0.
func HandoffURI(dest places.Place, mode Mode, platform Platform) (string, error) {
	coords, ok := dest.Coordinates()
	if !ok {
		return "", errors.ErrNoCoordinates
	}

	switch platform {
	case PlatformIOS:
		return iosURI(dest.Name, coords), nil
	case PlatformAndroid:
		return androidURI(dest.Name, coords, mode), nil
	default:
		return webURI(dest.Name, coords, mode), nil
	}
}

// webURI is the universal navigation URL for desktop and unknown devices.
func webURI(name string, coords places.Coordinates, mode Mode) string {
	if name == "" {
		name = "target"
	}
	navMode := "drive"
	if mode == ModeWalking {
		navMode = "walk"
	}
	return "https://uri.amap.com/navigation?to=" + formatCoordinates(coords) + "," + url.QueryEscape(name) +
		"&mode=" + navMode + "&callnative=0"
}

// iosURI is the provider's iOS navigation scheme. style=2 regardless of
// mode, matching the native app's behavior.
func iosURI(name string, coords places.Coordinates) string {
	if name == "" {
		name = "destination"
	}
	return "iosamap://navi?sourceApplication=" + handoffSource +
		"&poiname=" + url.QueryEscape(name) +
		"&lat=" + formatFloat(coords.Lat) +
		"&lon=" + formatFloat(coords.Lng) +
		"&dev=0&style=2"
}

// androidURI is the provider's Android route scheme. t=0 driving, t=2 walking.
func androidURI(name string, coords places.Coordinates, mode Mode) string {
	if name == "" {
		name = "destination"
	}
	t := "0"
	if mode == ModeWalking {
		t = "2"
	}
	return "androidamap://route?sourceApplication=" + handoffSource +
		"&dlat=" + formatFloat(coords.Lat) +
		"&dlon=" + formatFloat(coords.Lng) +
		"&dname=" + url.QueryEscape(name) +
		"&dev=0&t=" + t
}
