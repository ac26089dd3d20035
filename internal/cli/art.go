package cli

import (
	"strings"

	"github.com/theirongolddev/moneytree/internal/stage"
)

var stageArt = map[stage.Stage][]string{
	stage.Seed: {
		"           ",
		"           ",
		"           ",
		"     .     ",
		"   (   )   ",
		" ~~~~~~~~~ ",
	},
	stage.Sprout: {
		"           ",
		"           ",
		"           ",
		"    \\ /    ",
		"     |     ",
		" ~~~~~~~~~ ",
	},
	stage.Seedling: {
		"           ",
		"           ",
		"    \\|/    ",
		"   --+--   ",
		"     |     ",
		" ~~~~~~~~~ ",
	},
	stage.Small: {
		"           ",
		"    .^.    ",
		"   /###\\   ",
		"  /#####\\  ",
		"     ||    ",
		" ~~~~~~~~~ ",
	},
	stage.Medium: {
		"   .###.   ",
		"  #######  ",
		" ######### ",
		"  #######  ",
		"     ||    ",
		" ~~~~~~~~~ ",
	},
	stage.Flowering: {
		"   .*#*.   ",
		"  #*###*#  ",
		" ##*###*## ",
		"  #*###*#  ",
		"     ||    ",
		" ~~~~~~~~~ ",
	},
	stage.Fruiting: {
		"   .o#o.   ",
		"  #o###o#  ",
		" ##o#$#o## ",
		"  #o###o#  ",
		"     ||    ",
		" ~~~~~~~~~ ",
	},
}

// StageArt returns a fixed-height ASCII drawing of the tree at stage s.
func StageArt(s stage.Stage) string {
	lines, ok := stageArt[s]
	if !ok {
		lines = stageArt[stage.Seed]
	}
	return strings.Join(lines, "\n")
}

// ArtHeight is the line count of every StageArt drawing.
const ArtHeight = 6
