package motion

import (
	"errors"

	"AutoAngler/internal/model"
)

// DirectionAt returns the cursor's travel direction at the given frame index:
// +1 for rightward, -1 for leftward. The cursor sweeps one way for cycleFrames
// frames and then reverses, so the full period is 2*cycleFrames.
func DirectionAt(frameIndex, cycleFrames int) int {
	if frameIndex%(2*cycleFrames) < cycleFrames {
		return 1
	}
	return -1
}

// TimeToReach returns the seconds until the cursor arrives at targetX, given
// its current position, direction, and speed in pixels per frame. When the
// target lies behind the direction of travel, the path includes exactly one
// reflection off the field boundary; multi-bounce paths are not modeled.
func TimeToReach(cursorX, targetX float64, direction int, bounds model.FieldBounds, speed, frameRate float64) (float64, error) {
	if speed <= 0 {
		return 0, errors.New("cursor speed must be positive")
	}
	if frameRate <= 0 {
		return 0, errors.New("frame rate must be positive")
	}
	if bounds.Right <= bounds.Left {
		return 0, errors.New("field bounds must satisfy left < right")
	}

	var distance float64
	switch {
	case direction > 0 && targetX >= cursorX:
		distance = targetX - cursorX
	case direction < 0 && targetX <= cursorX:
		distance = cursorX - targetX
	case direction > 0:
		// Target is behind a rightward cursor: out to the right edge, then back.
		distance = (bounds.Right - cursorX) + (bounds.Right - targetX)
	default:
		// Target is behind a leftward cursor: out to the left edge, then back.
		distance = (cursorX - bounds.Left) + (targetX - bounds.Left)
	}

	return distance / speed / frameRate, nil
}
