package clients

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	Id      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Ruc     string    `json:"ruc,omitempty"`
	Created time.Time `json:"created"`
}

// Store keeps the customer register the quote flow hangs off.
type Store struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewStore() *Store {
	return &Store{clients: map[string]*Client{}}
}

func (s *Store) Create(c Client) (*Client, error) {
	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("client name is required")
	}
	c.Id = uuid.NewString()
	c.Created = time.Now()
	s.mu.Lock()
	s.clients[c.Id] = &c
	s.mu.Unlock()
	return &c, nil
}

func (s *Store) Update(c Client) error {
	if c.Id == "" {
		return fmt.Errorf("client id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.clients[c.Id]
	if !ok {
		return fmt.Errorf("client %s not found", c.Id)
	}
	c.Created = existing.Created
	s.clients[c.Id] = &c
	return nil
}

func (s *Store) Get(id string) (*Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	return c, ok
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return false
	}
	delete(s.clients, id)
	return true
}

func (s *Store) All() []*Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
