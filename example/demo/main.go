// Demo wiring for the optional library: registers has-value conditions during
// setup, seals the registry, and walks through construction, fallbacks,
// rendering and JSON round-trips with structured logging.
package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/presencekit/optional-go/optional"
)

type notifier interface {
	Channel() string
}

type mailNotifier struct {
	Address string `json:"address"`
}

func (n *mailNotifier) Channel() string { return "mail" }

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Configuration time: narrow what counts as present, then seal.
	if err := optional.ApplyHasValueCondition(func(email string) bool {
		return email != ""
	}); err != nil {
		logger.Error("registering email condition failed", "error", err)
		os.Exit(1)
	}

	if err := optional.ApplyHasValueCondition(func(n notifier) bool {
		return n.Channel() != ""
	}); err != nil {
		logger.Error("registering notifier condition failed", "error", err)
		os.Exit(1)
	}

	optional.Seal()

	// Strict construction fails on absent input.
	if _, err := optional.Of[*mailNotifier](nil); err != nil {
		logger.Info("strict construction rejected nil", "error", err)
	}

	// Lenient construction yields the canonical empty instance instead.
	empty := optional.OfNullable("")
	logger.Info("empty-string email after condition",
		"has_value", empty.HasValue(),
		"rendered", empty.String())

	email := optional.OfNullable("reader@example.com")
	logger.Info("present email",
		"has_value", email.HasValue(),
		"value", email.OrElse("unknown@example.com"))

	// JSON round trip: exactly one field, presence re-derived after decoding.
	target := optional.OfNullable(&mailNotifier{Address: "reader@example.com"})

	payload, err := target.MarshalJSON()
	if err != nil {
		logger.Error("encoding notifier failed", "error", err)
		os.Exit(1)
	}

	var restored optional.Optional[*mailNotifier]
	if err := restored.UnmarshalJSON(payload); err != nil {
		logger.Error("decoding notifier failed", "error", err)
		os.Exit(1)
	}

	logger.Info("notifier round trip",
		"key", "notifier-"+uuid.NewString(),
		"payload", string(payload),
		"has_value", restored.HasValue(),
		"equal", restored.Equal(target))
}
