package emoji

// https://unicode.org/emoji/charts/full-emoji-list.html
const (
	Star        = "🌟"
	SunFace     = "🌞"
	FullMoon    = "🌕"
	HalfEclipse = "🌓"
	FullEclipse = "🌑"

	Error = "🚫"
)

// MapScore maps a ranking score to a rough visual scale.
func MapScore(score float64) string {
	switch {
	case score >= 0.95:
		return Star
	case score >= 0.9:
		return SunFace
	case score >= 0.75:
		return FullMoon
	case score >= 0.5:
		return HalfEclipse
	}
	return FullEclipse
}
