package emoji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapScore(t *testing.T) {

	type test struct {
		score float64
		emoji string
	}

	tests := map[string]test{
		"star":    {score: 0.99, emoji: Star},
		"sun":     {score: 0.92, emoji: SunFace},
		"moon":    {score: 0.8, emoji: FullMoon},
		"half":    {score: 0.6, emoji: HalfEclipse},
		"eclipse": {score: 0.2, emoji: FullEclipse},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.emoji, MapScore(tt.score))
		})
	}

}
