package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an error outside the domain.
	CodeUnknown Code = "UNKNOWN"

	// Lookup errors
	CodeUnitNotFound  Code = "UNIT_NOT_FOUND"
	CodeCoordNotFound Code = "COORD_NOT_FOUND"

	// Precondition errors
	CodeWrongPhase       Code = "WRONG_PHASE"
	CodeNotActivePlayer  Code = "NOT_ACTIVE_PLAYER"
	CodeUnitAlreadyMoved Code = "UNIT_ALREADY_MOVED"
	CodeEmptyPath        Code = "EMPTY_PATH"
	CodeDuplicateUnit    Code = "DUPLICATE_UNIT"
	CodeUnitDestroyed    Code = "UNIT_DESTROYED"
	CodeGameOver         Code = "GAME_OVER"

	// Geometry errors
	CodeInvalidDestination  Code = "INVALID_DESTINATION"
	CodeDestinationOccupied Code = "DESTINATION_OCCUPIED"
	CodePathDiscontinuous   Code = "PATH_DISCONTINUOUS"
	CodePathBlocked         Code = "PATH_BLOCKED"
	CodePathOverBudget      Code = "PATH_OVER_BUDGET"
	CodePathStartMismatch   Code = "PATH_START_MISMATCH"

	// Input errors
	CodeInvalidFacing   Code = "INVALID_FACING"
	CodeUnknownUnitType Code = "UNKNOWN_UNIT_TYPE"
	CodeInvalidPlayer   Code = "INVALID_PLAYER"
	CodeInvalidScenario Code = "INVALID_SCENARIO"
	CodeUnknownCommand  Code = "UNKNOWN_COMMAND"
)

// Kind groups codes by the failure taxonomy.
type Kind int

const (
	KindUnknown Kind = iota
	KindLookup
	KindPrecondition
	KindGeometry
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindLookup:
		return "lookup"
	case KindPrecondition:
		return "precondition"
	case KindGeometry:
		return "geometry"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// Kind maps the code to its failure category.
func (c Code) Kind() Kind {
	switch c {
	case CodeUnitNotFound,
		CodeCoordNotFound:
		return KindLookup

	case CodeWrongPhase,
		CodeNotActivePlayer,
		CodeUnitAlreadyMoved,
		CodeEmptyPath,
		CodeDuplicateUnit,
		CodeUnitDestroyed,
		CodeGameOver:
		return KindPrecondition

	case CodeInvalidDestination,
		CodeDestinationOccupied,
		CodePathDiscontinuous,
		CodePathBlocked,
		CodePathOverBudget,
		CodePathStartMismatch:
		return KindGeometry

	case CodeInvalidFacing,
		CodeUnknownCommand,
		CodeUnknownUnitType,
		CodeInvalidPlayer,
		CodeInvalidScenario:
		return KindInput

	default:
		return KindUnknown
	}
}
