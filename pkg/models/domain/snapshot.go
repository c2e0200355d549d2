package domain

// Snapshot is the read-only view of console state a report run works
// against. The engine never mutates it.
type Snapshot struct {
	Events       []CalendarEvent `json:"events"`
	Users        []User          `json:"users"`
	Teams        []Team          `json:"teams"`
	ProductTypes []ProductType   `json:"productTypes"`
}

type CalendarEvent struct {
	ID           string   `json:"id"`
	OrderID      string   `json:"orderId"`
	CustomerName string   `json:"customerName"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	ProductType  string   `json:"productType"`
	CreatedBy    string   `json:"createdBy"`
	Status       string   `json:"status,omitempty"`
	ChangeTypes  []string `json:"changeTypes,omitempty"`
}

type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	TeamID string `json:"teamId,omitempty"`
}

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserByID resolves a user from the snapshot, nil when absent.
func (s Snapshot) UserByID(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// TeamByID resolves a team from the snapshot, nil when absent.
func (s Snapshot) TeamByID(id string) *Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}
