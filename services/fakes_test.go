package services

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"vcard.link/models"
	"vcard.link/pkg/queryparams"
	"vcard.link/repositories"

	"github.com/google/uuid"
)

// fakeCardRepo IBusinessCardRepository için bellek içi uygulama.
type fakeCardRepo struct {
	mu    sync.Mutex
	cards map[string]models.BusinessCard // owner|id
	err   error
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: make(map[string]models.BusinessCard)}
}

func cardKey(owner, id string) string { return owner + "|" + id }

func (r *fakeCardRepo) put(card models.BusinessCard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cards[cardKey(card.OwnerEmail, card.ID)] = card
}

func (r *fakeCardRepo) Create(_ context.Context, card *models.BusinessCard) error {
	if r.err != nil {
		return r.err
	}
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	card.CreatedAt = time.Now()
	r.put(*card)
	return nil
}

func (r *fakeCardRepo) FindByOwnerAndID(_ context.Context, owner, id string) (*models.BusinessCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	card, ok := r.cards[cardKey(owner, id)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &card, nil
}

func (r *fakeCardRepo) FindAllByOwner(_ context.Context, owner string) ([]models.BusinessCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]models.BusinessCard, 0)
	for _, c := range r.cards {
		if c.OwnerEmail == owner {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCardRepo) FindAllByOwnerPaginated(ctx context.Context, owner string, params queryparams.ListParams) ([]models.BusinessCard, int64, error) {
	all, err := r.FindAllByOwner(ctx, owner)
	if err != nil {
		return nil, 0, err
	}
	filtered := make([]models.BusinessCard, 0, len(all))
	for _, c := range all {
		if params.Status == "" || string(c.Status) == params.Status {
			filtered = append(filtered, c)
		}
	}
	total := int64(len(filtered))
	start := params.CalculateOffset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := min(start+params.PerPage, len(filtered))
	return filtered[start:end], total, nil
}

func (r *fakeCardRepo) Update(_ context.Context, card *models.BusinessCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cards[cardKey(card.OwnerEmail, card.ID)]; !ok {
		return repositories.ErrNotFound
	}
	r.cards[cardKey(card.OwnerEmail, card.ID)] = *card
	return nil
}

func (r *fakeCardRepo) UpdateStatus(_ context.Context, owner, id string, from, to models.CardStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	card, ok := r.cards[cardKey(owner, id)]
	if !ok || card.Status != from {
		return false, nil
	}
	card.Status = to
	r.cards[cardKey(owner, id)] = card
	return true, nil
}

// fakeContactRepo kontrol ile yazma arasında gecikme eklenebilen kişi deposu.
// enforceUnique kapalıyken depo aynı kartı iki kez kabul eder.
type fakeContactRepo struct {
	mu            sync.Mutex
	contacts      []models.Contact
	readDelay     time.Duration
	enforceUnique bool
	findErr       error
	createErr     error
	reads         atomic.Int32
	creates       atomic.Int32
}

func (r *fakeContactRepo) FindAllByOwner(ctx context.Context, owner string) ([]models.Contact, error) {
	r.reads.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	out := make([]models.Contact, 0)
	for _, c := range r.contacts {
		if c.OwnerEmail == owner {
			out = append(out, c)
		}
	}
	r.mu.Unlock()
	if r.readDelay > 0 {
		time.Sleep(r.readDelay)
	}
	return out, nil
}

func (r *fakeContactRepo) CreateIfAbsent(ctx context.Context, contact *models.Contact) error {
	r.creates.Add(1)
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enforceUnique {
		for _, c := range r.contacts {
			if c.ID == contact.ID || (c.OwnerEmail == contact.OwnerEmail && c.DonorCardID == contact.DonorCardID) {
				return repositories.ErrDuplicate
			}
		}
	}
	r.contacts = append(r.contacts, *contact)
	return nil
}

func (r *fakeContactRepo) count(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.contacts {
		if c.OwnerEmail == owner {
			n++
		}
	}
	return n
}

type fakeFeedbackRepo struct {
	mu    sync.Mutex
	saved []models.Feedback
	err   error
}

func (r *fakeFeedbackRepo) Create(_ context.Context, fb *models.Feedback) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, *fb)
	return nil
}

func (r *fakeFeedbackRepo) CountByOwner(_ context.Context, owner string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, f := range r.saved {
		if f.OwnerEmail == owner {
			n++
		}
	}
	return n, nil
}

func sampleInput() models.BusinessCardInput {
	return models.BusinessCardInput{
		Name:           "Jane Doe",
		Company:        "Acme",
		Role:           "CTO",
		Email:          "jane@acme.io",
		Mobile:         "+14155551234",
		OfficeAddress:  "1 Main St",
		CompanyWebsite: "https://acme.io",
		LinkedinURL:    "https://www.linkedin.com/in/jane-doe",
	}
}

func storedCard(owner, id string, status models.CardStatus) models.BusinessCard {
	card := models.BusinessCard{OwnerEmail: owner, Status: status}
	card.ID = id
	sampleInput().Apply(&card)
	return card
}

var (
	_ repositories.IBusinessCardRepository = (*fakeCardRepo)(nil)
	_ repositories.IContactRepository      = (*fakeContactRepo)(nil)
	_ repositories.IFeedbackRepository     = (*fakeFeedbackRepo)(nil)
)
