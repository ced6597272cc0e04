package projectapi

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type seedUser struct {
	ID       int    `toml:"id"`
	Username string `toml:"username"`
	Email    string `toml:"email"`
	FullName string `toml:"full_name"`
}

type seedWorkgroup struct {
	ID        int        `toml:"id"`
	ProjectID string     `toml:"project_id"`
	Users     []seedUser `toml:"users"`
}

type seedReview struct {
	Reviewer    int    `toml:"reviewer"`
	User        int    `toml:"user"`
	WorkgroupID int    `toml:"workgroup"`
	ContentID   string `toml:"content_id"`
	Question    string `toml:"question"`
	Answer      string `toml:"answer"`
}

type seedFile struct {
	Workgroups []seedWorkgroup `toml:"workgroups"`
	Reviews    []seedReview    `toml:"reviews"`
}

// LoadSeed fills the in-memory client with workgroups and review items
// read from a TOML file.
func (m *InMemClient) LoadSeed(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	return m.loadSeed(content)
}

func (m *InMemClient) loadSeed(content []byte) error {
	var seed seedFile
	err := toml.Unmarshal(content, &seed)
	if err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, wg := range seed.Workgroups {
		if wg.ID == 0 {
			return fmt.Errorf("workgroup without id in seed file")
		}
		users := make([]User, 0, len(wg.Users))
		for _, u := range wg.Users {
			users = append(users, User(u))
		}
		m.AddWorkgroup(Workgroup{ID: wg.ID, ProjectID: wg.ProjectID, Users: users})
	}

	for _, r := range seed.Reviews {
		m.AddReviewItems(ReviewItem(r))
	}
	return nil
}
