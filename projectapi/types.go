package projectapi

import "time"

type User struct {
	ID       int
	Username string
	Email    string
	FullName string
}

// UserDetails describes who uploaded a submission.
type UserDetails struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type Workgroup struct {
	ID        int
	ProjectID string
	Users     []User
}

func (wg Workgroup) UserIDs() []int {
	ids := make([]int, len(wg.Users))
	for i, u := range wg.Users {
		ids[i] = u.ID
	}
	return ids
}

func (wg Workgroup) HasMember(userID int) bool {
	for _, u := range wg.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// SubmissionData is the latest submission stored for one upload identifier.
type SubmissionData struct {
	SubmissionID     string
	DocumentID       string
	DocumentURL      string
	DocumentFilename string
	DocumentMimetype string
	Modified         time.Time
	UserDetails      *UserDetails
}

// SubmissionRecord is the metadata sent after the file itself is stored.
type SubmissionRecord struct {
	WorkgroupID      int
	UserID           int
	CourseID         string
	DocumentID       string
	DocumentURL      string
	DocumentFilename string
	DocumentMimetype string
}

type Submitted struct {
	SubmissionID string
	FileURL      string
}

// ReviewItem is one answer given during a peer or group review. User is
// zero for reviews of the whole group.
type ReviewItem struct {
	Reviewer    int
	User        int
	WorkgroupID int
	ContentID   string
	Question    string
	Answer      string
}
