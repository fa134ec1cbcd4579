package engine

import (
	"math"

	"github.com/piwi3910/SheetQuote/internal/model"
)

func sub(a, b model.Point2D) model.Point2D {
	return model.Point2D{X: a.X - b.X, Y: a.Y - b.Y}
}

func add(a, b model.Point2D) model.Point2D {
	return model.Point2D{X: a.X + b.X, Y: a.Y + b.Y}
}

func scale(a model.Point2D, k float64) model.Point2D {
	return model.Point2D{X: a.X * k, Y: a.Y * k}
}

func length(a model.Point2D) float64 {
	return math.Hypot(a.X, a.Y)
}

// normalize returns the unit vector of a, or the zero vector if a has no length.
func normalize(a model.Point2D) model.Point2D {
	l := length(a)
	if l == 0 {
		return model.Point2D{}
	}
	return model.Point2D{X: a.X / l, Y: a.Y / l}
}

func dot(a, b model.Point2D) float64 {
	return a.X*b.X + a.Y*b.Y
}

func midpoint(a, b model.Point2D) model.Point2D {
	return model.Point2D{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
