package scoring

// Card is a player's score sheet. A nil PerFrame entry means the frame has
// nothing to show yet; it contributes nothing to Total.
type Card struct {
	Total    int
	PerFrame [Frames]*int
}

// Score computes the sheet for one player's frames. Frames past the tenth are
// ignored. Bonus balls that have not been thrown count as 0, so strike and
// spare frames read low until their bonus rolls arrive; recomputing from the
// grown frames yields the final value.
func Score(frames []Frame) Card {
	if len(frames) > Frames {
		frames = frames[:Frames]
	}
	var rolls []int
	for _, f := range frames {
		rolls = append(rolls, f...)
	}
	at := func(i int) int {
		if i < len(rolls) {
			return rolls[i]
		}
		return 0
	}

	var card Card
	cursor := 0
	for i := 0; i < Frames; i++ {
		var value int
		if at(cursor) == Pins {
			value = Pins + at(cursor+1) + at(cursor+2)
			cursor++
		} else {
			pair := at(cursor) + at(cursor+1)
			value = pair
			if pair == Pins {
				value += at(cursor + 2)
			}
			cursor += 2
		}
		if !scoreable(i, frames) {
			continue
		}
		v := value
		card.PerFrame[i] = &v
		card.Total += value
	}
	return card
}

func scoreable(index int, frames []Frame) bool {
	if index >= len(frames) {
		return false
	}
	kind := Classify(index, frames[index]).Kind
	return kind != Empty && kind != Pending
}

// Cumulative returns the running totals printed under each frame.
func (c Card) Cumulative() [Frames]*int {
	var out [Frames]*int
	running := 0
	for i, v := range c.PerFrame {
		if v == nil {
			continue
		}
		running += *v
		r := running
		out[i] = &r
	}
	return out
}
