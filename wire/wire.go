package wire

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/katalvlaran/pathgrid/pathfinder"
	"github.com/katalvlaran/pathgrid/playfield"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Comment labels for failures that are not a playfield.MapError.
const (
	KindBadRequest = "BadRequest"
	KindInternal   = "Internal"
)

// ErrBadRequest marks a request body that could not be decoded or is
// structurally inconsistent.
var ErrBadRequest = errors.New("wire: bad request")

// Request is one path query as sent by clients.
// Exactly one of Map and Rows may be set. When Rows is used, a zero Width or
// Height is taken from the rows.
type Request struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Map         []float64   `json:"map,omitempty"`
	Rows        [][]float64 `json:"rows,omitempty"`
	Start       [2]int      `json:"start"`
	Destination [2]int      `json:"destination"`
}

// PathBody wraps the steps of a path in the response envelope.
type PathBody struct {
	Steps []playfield.Point `json:"steps"`
}

// Response is the envelope returned for every Request.
type Response struct {
	Status  string   `json:"status"`
	Comment string   `json:"comment"`
	Path    PathBody `json:"path"`
}

// OK reports whether r carries a path.
func (r Response) OK() bool { return r.Status == StatusOK }

// DecodeRequest reads a single JSON Request from r.
// Unknown fields and trailing data are rejected with ErrBadRequest.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if dec.More() {
		return Request{}, fmt.Errorf("%w: trailing data after request", ErrBadRequest)
	}
	return req, nil
}

// Query converts req into a pathfinder.Query.
func (req Request) Query() (pathfinder.Query, error) {
	q := pathfinder.Query{
		Width:       req.Width,
		Height:      req.Height,
		Penalties:   req.Map,
		Start:       playfield.Point{X: req.Start[0], Y: req.Start[1]},
		Destination: playfield.Point{X: req.Destination[0], Y: req.Destination[1]},
	}
	if req.Rows == nil {
		return q, nil
	}
	if len(req.Map) > 0 {
		return pathfinder.Query{}, fmt.Errorf("%w: both map and rows given", ErrBadRequest)
	}
	w, h, penalties, err := playfield.FromRows(req.Rows)
	if err != nil {
		return pathfinder.Query{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if q.Width == 0 {
		q.Width = w
	}
	if q.Height == 0 {
		q.Height = h
	}
	q.Penalties = penalties
	return q, nil
}

// Handle runs req through the pathfinder and encodes the outcome.
func Handle(req Request, opts ...pathfinder.Option) Response {
	q, err := req.Query()
	if err != nil {
		return Encode(playfield.Path{}, 0, err)
	}
	res, err := pathfinder.Compute(q, opts...)
	return Encode(res.Path, res.Cost, err)
}

// Encode builds the Response for a search outcome. A nil err yields an "ok"
// Response carrying path; otherwise path and cost are ignored.
func Encode(path playfield.Path, cost float64, err error) Response {
	if err == nil {
		steps := path.Steps
		if steps == nil {
			steps = []playfield.Point{}
		}
		return Response{
			Status:  StatusOK,
			Comment: fmt.Sprintf("[OK] cost=%v", cost),
			Path:    PathBody{Steps: steps},
		}
	}
	return Failure(Kind(err))
}

// Failure builds an "error" Response with the given kind label.
func Failure(kind string) Response {
	return Response{
		Status:  StatusError,
		Comment: "[ERROR] " + kind,
		Path:    PathBody{Steps: []playfield.Point{}},
	}
}

// Kind returns the comment label for err: the MapErrorKind name, KindBadRequest
// or KindInternal.
func Kind(err error) string {
	var me *playfield.MapError
	switch {
	case errors.As(err, &me):
		return me.Kind.String()
	case errors.Is(err, ErrBadRequest):
		return KindBadRequest
	default:
		return KindInternal
	}
}

// Marshal serializes resp.
func Marshal(resp Response) ([]byte, error) {
	b, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal response: %w", err)
	}
	return b, nil
}

// internalJSON is returned by CalculateShortestPath if marshalling fails.
const internalJSON = `{"status":"error","comment":"[ERROR] Internal","path":{"steps":[]}}`

// CalculateShortestPath computes the path for the raw arguments and returns
// the serialized Response. It never fails: errors are reported in the envelope.
func CalculateShortestPath(width, height int, penaltyMap []float64, start, destination [2]int, opts ...pathfinder.Option) string {
	resp := Handle(Request{
		Width:       width,
		Height:      height,
		Map:         penaltyMap,
		Start:       start,
		Destination: destination,
	}, opts...)
	b, err := Marshal(resp)
	if err != nil {
		return internalJSON
	}
	return string(b)
}
