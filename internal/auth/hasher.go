package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	apperrors "jobify/internal/errors"
)

// DefaultCost is the bcrypt cost used for new hashes.
const DefaultCost = 10

var errEmptyPassword = errors.New("password is empty")

// Hasher runs bcrypt under a bounded pool so that CPU-bound hashing cannot
// occupy more than a fixed number of cores, whatever the request load.
// Waiting for a slot honours context cancellation.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted

	// dummyHash has the same cost as real hashes and exists before the first miss.
	dummyHash []byte
}

// NewHasher creates a Hasher with the given bcrypt cost and pool size.
func NewHasher(cost, workers int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	if workers < 1 {
		workers = 1
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("jobify-dummy-password"), cost)
	return &Hasher{
		cost:      cost,
		sem:       semaphore.NewWeighted(int64(workers)),
		dummyHash: dummy,
	}
}

// Hash returns a salted bcrypt hash of password. Empty and over-long passwords
// fail with apperrors.ErrHashingFailed.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", apperrors.Wrap(apperrors.ErrHashingFailed, errEmptyPassword)
	}

	var (
		hashed []byte
		err    error
	)
	if runErr := h.run(ctx, func() {
		hashed, err = bcrypt.GenerateFromPassword([]byte(password), h.cost)
	}); runErr != nil {
		return "", runErr
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Compare reports whether password matches hash. A mismatch is (false, nil);
// an error means the hash itself is unusable or ctx ended while waiting.
func (h *Hasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	var err error
	if runErr := h.run(ctx, func() {
		err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	}); runErr != nil {
		return false, runErr
	}
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// CompareDummy spends one comparison against a fixed hash of the same cost.
// It is used on lookup misses so they take about as long as a wrong password.
func (h *Hasher) CompareDummy(ctx context.Context, password string) {
	_ = h.run(ctx, func() {
		_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
	})
}

func (h *Hasher) run(ctx context.Context, fn func()) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)
	fn()
	return nil
}
