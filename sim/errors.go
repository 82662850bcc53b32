package sim

import (
	"errors"

	"github.com/agloe-labs/evocore/geom"
)

var (
	errNilUpdateParamsConfig = errors.New("sim: updateParams command carries a nil config")
	errUnknownCommand        = errors.New("sim: unrecognized command kind")
)

func geomCoord(x, y int) geom.Coord {
	return geom.Coord{X: x, Y: y}
}
