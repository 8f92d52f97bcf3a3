// Package notify routes pull request notifications to developer audiences.
package notify

import (
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Audience is one of the two developer groups notifications are sent to.
type Audience string

const (
	Frontend Audience = "frontend"
	Backend  Audience = "backend"
)

// Router classifies repositories into audiences by membership in the
// configured frontend repository set.
type Router struct {
	frontend sets.Set[string]
}

func NewRouter(frontendRepos []string) *Router {
	return &Router{frontend: sets.New[string](frontendRepos...)}
}

// Classify returns the audience for a repository. Anything outside the
// frontend set is backend.
func (r *Router) Classify(repo string) Audience {
	if r.frontend.Has(repo) {
		return Frontend
	}
	return Backend
}

// Message is one aggregated notification for a single audience.
type Message struct {
	Audience Audience
	Text     string
}

// Buckets accumulates notification lines per audience during a batch run.
// A bucket with no lines produces no message.
type Buckets struct {
	lines map[Audience][]string
}

func NewBuckets() *Buckets {
	return &Buckets{lines: map[Audience][]string{}}
}

// Add appends a line to an audience bucket. Insertion order is preserved.
func (b *Buckets) Add(audience Audience, line string) {
	b.lines[audience] = append(b.lines[audience], line)
}

// Flush returns one message per non-empty audience, frontend first, and
// clears the buckets.
func (b *Buckets) Flush() []Message {
	var messages []Message
	for _, audience := range []Audience{Frontend, Backend} {
		if lines := b.lines[audience]; len(lines) > 0 {
			messages = append(messages, Message{
				Audience: audience,
				Text:     strings.Join(lines, "\n"),
			})
		}
	}
	b.lines = map[Audience][]string{}
	return messages
}
