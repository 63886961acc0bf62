package tracks

import (
	"github.com/pkg/errors"
)

var (
	ErrFrameOutOfRange = errors.New("frame index out of range")
	ErrInvalidBBox     = errors.New("invalid bounding box")
	ErrUnknownClass    = errors.New("unknown object class")
)

//Frame holds the records of one class in one frame, keyed by track id.
//IDs keeps the order in which the tracker reported them, map iteration order is never used.
type Frame struct {
	IDs     []int           `json:"ids" msgpack:"ids"`
	Records map[int]*Record `json:"records" msgpack:"records"`
}

func NewFrame() *Frame {
	return &Frame{
		IDs:     make([]int, 0),
		Records: make(map[int]*Record),
	}
}

//Set stores r under id, keeping the id's original position if it is already present
func (f *Frame) Set(id int, r *Record) {
	if _, ok := f.Records[id]; !ok {
		f.IDs = append(f.IDs, id)
	}
	f.Records[id] = r
}

func (f *Frame) Get(id int) (*Record, bool) {
	if f == nil {
		return nil, false
	}
	r, ok := f.Records[id]
	return r, ok
}

func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.IDs)
}

//Each visits the records in tracker order
func (f *Frame) Each(fn func(id int, r *Record)) {
	if f == nil {
		return
	}
	for _, id := range f.IDs {
		if r, ok := f.Records[id]; ok && r != nil {
			fn(id, r)
		}
	}
}

//Table is the whole-video track table: one Frame per class per frame index
type Table struct {
	Players  []*Frame `json:"players" msgpack:"players"`
	Referees []*Frame `json:"referees" msgpack:"referees"`
	Ball     []*Frame `json:"ball" msgpack:"ball"`
}

func NewTable() *Table {
	return &Table{
		Players:  make([]*Frame, 0),
		Referees: make([]*Frame, 0),
		Ball:     make([]*Frame, 0),
	}
}

//AddFrame appends an empty frame for every class and returns its index
func (t *Table) AddFrame() int {
	t.Players = append(t.Players, NewFrame())
	t.Referees = append(t.Referees, NewFrame())
	t.Ball = append(t.Ball, NewFrame())
	return len(t.Players) - 1
}

//Len is the number of frames in the table
func (t *Table) Len() int {
	return len(t.Players)
}

//Frames returns the per-frame sequence of class c
func (t *Table) Frames(c Class) ([]*Frame, error) {
	switch c {
	case Player:
		return t.Players, nil
	case Referee:
		return t.Referees, nil
	case Ball:
		return t.Ball, nil
	}
	return nil, errors.Wrapf(ErrUnknownClass, "class '%s'", c)
}

//Frame returns the frame of class c at index n
func (t *Table) Frame(c Class, n int) (*Frame, error) {
	frames, err := t.Frames(c)
	if err != nil {
		return nil, err
	}
	if n < 0 || n >= len(frames) {
		return nil, errors.Wrapf(ErrFrameOutOfRange, "frame %d of %d", n, len(frames))
	}
	return frames[n], nil
}

//Set stores a fresh record for track id in frame n of class c
func (t *Table) Set(c Class, n, id int, box BBox) error {
	if !box.Valid() {
		return errors.Wrapf(ErrInvalidBBox, "class '%s' frame %d id %d", c, n, id)
	}
	f, err := t.Frame(c, n)
	if err != nil {
		return err
	}
	f.Set(id, &Record{BBox: box})
	return nil
}

//AddPositions sets Position to the bbox centroid for every record of every class in frame n.
//Records with an invalid bbox are left without a position and their ids are returned.
func (t *Table) AddPositions(n int) ([]int, error) {
	skipped := make([]int, 0)
	for _, c := range Classes {
		f, err := t.Frame(c, n)
		if err != nil {
			return nil, err
		}
		f.Each(func(id int, r *Record) {
			if !r.BBox.Valid() {
				skipped = append(skipped, id)
				return
			}
			p := r.BBox.Center()
			r.Position = &p
		})
	}
	return skipped, nil
}
