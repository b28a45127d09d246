package availability

import (
	"encoding/json"
	"fmt"

	"roomscout/internal/domain/room"
)

// Tri is the tri-state availability value. Unknown means the source's own
// booking horizon does not yet cover the requested date; it is not the same
// as unavailable and must never be collapsed into No downstream.
type Tri int

const (
	No Tri = iota
	Yes
	Unknown
)

func FromBool(b bool) Tri {
	if b {
		return Yes
	}
	return No
}

func (t Tri) Bool() (value, known bool) {
	switch t {
	case Yes:
		return true, true
	case No:
		return false, true
	default:
		return false, false
	}
}

// MarshalJSON renders Yes/No as JSON booleans and Unknown as the string
// "unknown", matching the wire format consumers already parse.
func (t Tri) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	case Unknown:
		return []byte(`"unknown"`), nil
	}
	return nil, fmt.Errorf("invalid tri-state value %d", int(t))
}

func (t *Tri) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = FromBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == "unknown" {
		*t = Unknown
		return nil
	}
	return fmt.Errorf("invalid tri-state value %s", string(data))
}

// Code is a stable, machine-readable error code surfaced in logs. Adapters
// define their own codes; the generic ones below cover the shared layers.
type Code string

const (
	CodeValidation Code = "VALIDATION-001"
	CodeUpstream   Code = "API-001"
	CodeInternal   Code = "COMMON-001"
)

// SourceError is a per-room failure carried as a value inside a result list.
// It never crosses the aggregation boundary as a thrown error: one
// malfunctioning source must not abort sibling rooms or adapters.
type SourceError struct {
	Code    Code
	Status  int
	Message string
	cause   error
}

func NewSourceError(code Code, status int, message string, cause error) *SourceError {
	return &SourceError{Code: code, Status: status, Message: message, cause: cause}
}

func (e *SourceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.cause
}

// RoomResult is the per-room outcome of one source adapter call: either an
// availability record or a typed failure, never both.
type RoomResult struct {
	Room      room.Detail
	Available Tri
	Slots     map[string]Tri
	Err       *SourceError
}

func NewRecord(rm room.Detail, available Tri, slots map[string]Tri) RoomResult {
	return RoomResult{Room: rm, Available: available, Slots: slots}
}

// NewUnknownRecord fills every requested slot with Unknown; adapters return
// it when the requested date is beyond their booking horizon.
func NewUnknownRecord(rm room.Detail, hourSlots []string) RoomResult {
	slots := make(map[string]Tri, len(hourSlots))
	for _, hs := range hourSlots {
		slots[hs] = Unknown
	}
	return RoomResult{Room: rm, Available: Unknown, Slots: slots}
}

func NewFailure(rm room.Detail, err *SourceError) RoomResult {
	return RoomResult{Room: rm, Err: err}
}

func (r RoomResult) Failed() bool {
	return r.Err != nil
}

// Overall folds per-slot states into the room-level availability: Yes only
// when every slot is Yes, Unknown when any slot is Unknown, otherwise No.
func Overall(slots map[string]Tri) Tri {
	overall := Yes
	for _, v := range slots {
		switch v {
		case Unknown:
			return Unknown
		case No:
			overall = No
		}
	}
	return overall
}
