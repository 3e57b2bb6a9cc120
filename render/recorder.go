package render

import (
	"fmt"

	"github.com/plus3/orrery/physics"
	"github.com/plus3/orrery/solar"
)

// Track is everything a Recorder saw for one body.
type Track struct {
	Body      Body
	Positions []physics.Vec2
}

// Recorder keeps every registration and position in memory.
type Recorder struct {
	handles  *HandleTable
	tracks   []Track
	Presents int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{handles: NewHandleTable()}
}

func (r *Recorder) Register(body Body) error {
	h, fresh := r.handles.Assign(body.Id)
	if !fresh {
		return fmt.Errorf("register %s: already registered", body.Id)
	}
	if int(h) != len(r.tracks) {
		panic("recorder handle out of sync")
	}
	r.tracks = append(r.tracks, Track{
		Body:      body,
		Positions: []physics.Vec2{body.Position},
	})
	return nil
}

func (r *Recorder) Reposition(body Body) error {
	h, err := r.handles.Lookup(body.Id)
	if err != nil {
		return err
	}
	track := &r.tracks[h]
	track.Positions = append(track.Positions, body.Position)
	return nil
}

func (r *Recorder) Present() error {
	r.Presents++
	return nil
}

// Track returns the recording for id, or nil.
func (r *Recorder) Track(id solar.BodyId) *Track {
	h, err := r.handles.Lookup(id)
	if err != nil {
		return nil
	}
	return &r.tracks[h]
}

// Tracks returns recordings in registration order.
func (r *Recorder) Tracks() []Track {
	return r.tracks
}
