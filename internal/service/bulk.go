package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/customer-service/internal/domain"
	"github.com/spec-kit/customer-service/internal/events"
	apperrors "github.com/spec-kit/customer-service/pkg/util/errorutil"
)

// Bulk creation bounds.
const (
	BulkCreateMin = 1
	BulkCreateMax = 1000
)

// BulkItemError records a single failed attempt within a batch.
type BulkItemError struct {
	Index   int
	Message string
}

// BulkCreateResult aggregates per-item outcomes of a batch. Invariant:
// SuccessCount + FailureCount equals the requested count, len(Created)
// equals SuccessCount and len(Errors) equals FailureCount.
type BulkCreateResult struct {
	SuccessCount int
	FailureCount int
	Created      []domain.Customer
	Errors       []BulkItemError
}

// BulkCreate synthesizes count customers and creates each one through the
// regular create path. Attempts are isolated: a failed item is recorded
// against its index and never aborts the remaining iterations or rolls back
// earlier successes.
func (s *CustomerService) BulkCreate(ctx context.Context, actorID string, count int) (*BulkCreateResult, error) {
	if count < BulkCreateMin || count > BulkCreateMax {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("count must be between %d and %d", BulkCreateMin, BulkCreateMax),
			map[string]any{"count": count})
	}

	result := &BulkCreateResult{
		Created: make([]domain.Customer, 0, count),
		Errors:  []BulkItemError{},
	}
	for index := 0; index < count; index++ {
		customer, err := s.Create(ctx, actorID, synthesizeCandidate())
		if err != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, BulkItemError{
				Index:   index,
				Message: apperrors.ToDomainError(err).Message,
			})
			continue
		}
		result.SuccessCount++
		result.Created = append(result.Created, *customer)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventBulkCreateCompleted,
		ActorID: actorRef(actorID),
		Payload: events.BulkCreateCompletedPayload{
			Requested: count,
			Succeeded: result.SuccessCount,
			Failed:    result.FailureCount,
		},
	})
	return result, nil
}

var (
	sampleFirstNames = []string{"Alice", "Bruno", "Carmen", "Diego", "Elena", "Felix", "Greta", "Hugo", "Irene", "Jonas"}
	sampleLastNames  = []string{"Alvarez", "Becker", "Costa", "Dubois", "Eriksen", "Fischer", "Garcia", "Haddad", "Ivanov", "Jansen"}
	sampleStreets    = []string{"Oak", "Maple", "Cedar", "Birch", "Willow", "Elm"}
)

// synthesizeCandidate builds one random customer payload. The uuid token in
// the email keeps generated addresses unique across batches.
func synthesizeCandidate() CustomerInput {
	first := sampleFirstNames[rand.Intn(len(sampleFirstNames))]
	last := sampleLastNames[rand.Intn(len(sampleLastNames))]
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]

	phone := fmt.Sprintf("+1-%03d-%04d", rand.Intn(1000), rand.Intn(10000))
	address := fmt.Sprintf("%d %s Street", 1+rand.Intn(9999), sampleStreets[rand.Intn(len(sampleStreets))])

	return CustomerInput{
		Name:    first + " " + last,
		Email:   fmt.Sprintf("%s.%s.%s@example.com", strings.ToLower(first), strings.ToLower(last), token),
		Phone:   &phone,
		Address: &address,
	}
}
