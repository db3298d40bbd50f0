package constants

// Listing format constants
const (
	// SectionStartLine separates the header/legend of a listing file from its data rows
	SectionStartLine = "----\t\t\t------"

	// MaxLineBytes is the largest single line the listing scanner accepts
	MaxLineBytes = 1024 * 1024
)

// RequiredSources lists the listing files that must be present in the input
// directory, in the order they are merged. Later files win on duplicate keys.
var RequiredSources = []string{"actors.list", "actresses.list"}

// Graph schema constants
const (
	// ActorLabel is the label of person nodes
	ActorLabel = "Actor"
	// MovieLabel is the label of film nodes
	MovieLabel = "Movie"
	// ActedIn is the relationship type from an actor to a movie
	ActedIn = "ACTED_IN"
	// IDProperty is the only property set on loaded nodes
	IDProperty = "id"
)

// Loader constants
const (
	// DefaultBatchSize is the number of persons written per transaction
	DefaultBatchSize = 1000
)
