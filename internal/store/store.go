package store

import (
	"errors"

	"github.com/clawdbotatg/nerve-cord/internal/models"
)

// ErrNotFound is returned when an id or name does not resolve to a live
// record. Expired messages count as absent.
var ErrNotFound = errors.New("not found")

// MessageFilter selects messages by exact field match. Zero values match
// everything.
type MessageFilter struct {
	To     string
	From   string
	Status string
}

// LarvaPatch carries the updatable larva fields. Nil means leave unchanged.
type LarvaPatch struct {
	Task   *string
	Status *string
}

// PriorityPatch carries the updatable priority fields. Rank 0 means keep the
// current position.
type PriorityPatch struct {
	Text *string
	From *string
	Rank int
}

// ProjectPatch carries the updatable project fields. Nil means leave
// unchanged; Metadata is merged key by key rather than replaced.
type ProjectPatch struct {
	Name        *string
	Status      *string
	Repo        *string
	URL         *string
	Contract    *string
	Chain       *string
	Description *string
	Metadata    map[string]any
	NextSteps   *[]string
}

// SuggestionPatch carries the updatable suggestion fields.
type SuggestionPatch struct {
	Title *string
	Body  *string
}

// DataStore is the narrow interface handlers program against. MemoryStore is
// the only implementation today; keeping the seam explicit means the
// single-writer assumption lives in one component.
type DataStore interface {
	// Message lifecycle
	CreateMessage(m *models.Message) *models.Message
	GetMessage(id string) (*models.Message, error)
	ListMessages(f MessageFilter) []*models.Message
	MarkSeen(id string) (*models.Message, error)
	BurnMessage(id string) (*models.Message, error)
	DeleteMessage(id string) error
	CountMessages() int

	// Bot registry
	PutBot(b *models.Bot) *models.Bot
	GetBot(name string) (*models.Bot, error)
	ListBots() []*models.Bot
	DeleteBot(name string) error
	CountBots() int

	// Heartbeats (ephemeral)
	RecordHeartbeat(hb *models.Heartbeat, larvaStatus, larvaTask string)
	ListHeartbeats() []*models.Heartbeat

	// Larvae (ephemeral)
	RegisterLarva(l *models.Larva) *models.Larva
	GetLarva(name string) (*models.Larva, error)
	ListLarvae(activeOnly bool) []*models.Larva
	UpdateLarva(name string, p LarvaPatch) (*models.Larva, error)
	DeleteLarva(name string) error

	// Priorities
	ListPriorities() []*models.Priority
	CreatePriority(text, from string, rank int) *models.Priority
	TopPriority(text, from string) []*models.Priority
	UpdatePriority(id string, p PriorityPatch) (*models.Priority, error)
	CompletePriority(id string) (*models.Priority, error)
	DeletePriority(id string) ([]*models.Priority, error)
	DeletePriorityByRank(rank int) ([]*models.Priority, error)

	// Projects
	ListProjects(status string) []*models.Project
	CreateProject(p *models.Project) *models.Project
	GetProject(id string) (*models.Project, error)
	UpdateProject(id string, patch ProjectPatch) (*models.Project, error)
	DeleteProject(id string) (*models.Project, error)

	// Suggestions
	ListSuggestions() []*models.Suggestion
	CreateSuggestion(s *models.Suggestion) *models.Suggestion
	GetSuggestion(id string) (*models.Suggestion, error)
	UpdateSuggestion(id string, p SuggestionPatch) (*models.Suggestion, error)
	DeleteSuggestion(id string) (*models.Suggestion, error)

	// Maintenance
	Sweep() (expiredMessages, purgedLarvae int)
	Save()
}
