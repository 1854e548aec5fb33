package ebiten

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jetsetilly/test86/resources"
)

func onWindowOpen() error {
	s, err := resources.Read("window")
	if err != nil {
		return err
	}

	var geom windowGeometry

	_, err = fmt.Sscanf(s, "%d %d %d %d", &geom.x, &geom.y, &geom.w, &geom.h)
	if err != nil {
		return err
	}
	if !geom.valid() {
		return nil
	}

	ebiten.SetWindowPosition(geom.x, geom.y)
	ebiten.SetWindowSize(geom.w, geom.h)

	return nil
}

func onWindowClose(geom windowGeometry) error {
	s := fmt.Sprintf("%d %d %d %d", geom.x, geom.y, geom.w, geom.h)
	return resources.Write("window", s)
}
