package testbackend

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/donatehub/donatehub-client/internal/core/domain"
)

type account struct {
	user         domain.User
	passwordHash []byte
	createdAt    time.Time
}

type campaign struct {
	domain.Campaign
	ownerID string
}

type donation struct {
	id         string
	campaignID string
	donorID    string
	amount     domain.Money
	at         time.Time
}

// store is the in-memory state of the development backend.
type store struct {
	mu        sync.RWMutex
	accounts  map[string]*account // by id
	byEmail   map[string]string   // email -> id
	campaigns map[string]*campaign
	order     []string // campaign ids, creation order
	donations []donation
	now       func() time.Time
}

func newStore() *store {
	return &store{
		accounts:  make(map[string]*account),
		byEmail:   make(map[string]string),
		campaigns: make(map[string]*campaign),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *store) addUser(name, email string, hash []byte, role domain.Role) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.byEmail[key]; ok {
		return domain.User{}, domain.ErrUserExists
	}
	u := domain.User{ID: uuid.NewString(), Name: name, Email: email, Role: role}
	if role == domain.RoleNGO {
		u.VerificationStatus = "pending"
	}
	s.accounts[u.ID] = &account{user: u, passwordHash: hash, createdAt: s.now()}
	s.byEmail[key] = u.ID
	return u, nil
}

func (s *store) accountByEmail(email string) (*account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	return s.accounts[id], true
}

func (s *store) user(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.User{}, false
	}
	return a.user, true
}

func (s *store) users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.accounts[out[i].ID].createdAt.Before(s.accounts[out[j].ID].createdAt)
	})
	return out
}

func (s *store) addCampaign(owner domain.User, title, description, category string, goal domain.Money) domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &campaign{
		Campaign: domain.Campaign{
			ID:          ulid.Make().String(),
			Title:       title,
			Description: description,
			Category:    category,
			GoalAmount:  goal,
			Status:      domain.CampaignActive,
			CreatedAt:   s.now(),
		},
		ownerID: owner.ID,
	}
	s.campaigns[c.ID] = c
	s.order = append(s.order, c.ID)
	return s.populated(c)
}

// populated must be called with mu held.
func (s *store) populated(c *campaign) domain.Campaign {
	out := c.Campaign
	out.CreatedBy = &domain.Party{ID: c.ownerID}
	if a, ok := s.accounts[c.ownerID]; ok {
		out.CreatedBy.Name = a.user.Name
	}
	return out
}

func (s *store) campaign(id string) (domain.Campaign, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return domain.Campaign{}, "", false
	}
	return s.populated(c), c.ownerID, true
}

// listCampaigns returns newest first.
func (s *store) listCampaigns(match func(domain.Campaign, string) bool, limit int) []domain.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Campaign, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		c := s.campaigns[s.order[i]]
		if c == nil || !match(c.Campaign, c.ownerID) {
			continue
		}
		out = append(out, s.populated(c))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (s *store) setStatus(id string, status domain.CampaignStatus) (domain.Campaign, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return domain.Campaign{}, false
	}
	c.Status = status
	return s.populated(c), true
}

func (s *store) deleteCampaign(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return false
	}
	delete(s.campaigns, id)
	for i, cid := range s.order {
		if cid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *store) donate(campaignID, donorID string, amount domain.Money) (domain.DonationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[campaignID]
	if !ok {
		return domain.DonationRecord{}, domain.ErrCampaignNotFound
	}
	if !c.Active() {
		return domain.DonationRecord{}, domain.ErrForbidden
	}
	d := donation{id: ulid.Make().String(), campaignID: campaignID, donorID: donorID, amount: amount, at: s.now()}
	s.donations = append(s.donations, d)
	c.RaisedAmount += amount
	return s.record(d), nil
}

// record must be called with mu held. Deleted campaigns degrade to a bare id.
func (s *store) record(d donation) domain.DonationRecord {
	out := domain.DonationRecord{
		ID:        d.id,
		Campaign:  domain.Campaign{ID: d.campaignID},
		Donor:     domain.Party{ID: d.donorID},
		Amount:    d.amount,
		DonatedAt: d.at,
	}
	if c, ok := s.campaigns[d.campaignID]; ok {
		out.Campaign = s.populated(c)
	}
	if a, ok := s.accounts[d.donorID]; ok {
		out.Donor.Name = a.user.Name
	}
	return out
}

// donationsWhere returns matching donations, newest first. match receives
// the owner of the donation's campaign ("" once the campaign is deleted).
func (s *store) donationsWhere(match func(d donation, campaignOwner string) bool) []domain.DonationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DonationRecord, 0)
	for i := len(s.donations) - 1; i >= 0; i-- {
		d := s.donations[i]
		var owner string
		if c, ok := s.campaigns[d.campaignID]; ok {
			owner = c.ownerID
		}
		if match(d, owner) {
			out = append(out, s.record(d))
		}
	}
	return out
}

func (s *store) stats() domain.AdminStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st domain.AdminStats
	for _, a := range s.accounts {
		st.TotalUsers++
		switch a.user.Role {
		case domain.RoleDonor:
			st.TotalDonors++
		case domain.RoleNGO:
			st.TotalNGOs++
		case domain.RoleAdmin, domain.RoleSuperAdmin:
			st.TotalAdmins++
		}
	}
	st.TotalCampaigns = len(s.campaigns)
	st.TotalDonations = len(s.donations)
	for _, d := range s.donations {
		st.TotalAmount += d.amount
	}
	return st
}
