package projectapi

import (
	"fmt"
	"time"
)

type workgroupRow struct {
	WorkgroupID int            `dynamo:"WorkgroupID,hash"`
	ProjectID   string         `dynamo:"ProjectID"`
	UserIDs     []int          `dynamo:"UserIDs,set"`
	Users       []workgroupUsr `dynamo:"Users"`
}

type workgroupUsr struct {
	ID       int    `dynamo:"ID"`
	Username string `dynamo:"Username"`
	Email    string `dynamo:"Email"`
	FullName string `dynamo:"FullName"`
}

func (row workgroupRow) toWorkgroup() Workgroup {
	users := make([]User, len(row.Users))
	for i, u := range row.Users {
		users[i] = User{ID: u.ID, Username: u.Username, Email: u.Email, FullName: u.FullName}
	}
	return Workgroup{ID: row.WorkgroupID, ProjectID: row.ProjectID, Users: users}
}

// submissionRow holds the latest submission per (group, upload id); a newer
// upload overwrites the row.
type submissionRow struct {
	WorkgroupID      int       `dynamo:"WorkgroupID,hash"`
	DocumentID       string    `dynamo:"DocumentID,range"`
	SubmissionID     string    `dynamo:"SubmissionID"`
	DocumentURL      string    `dynamo:"DocumentURL"`
	DocumentFilename string    `dynamo:"DocumentFilename"`
	DocumentMimetype string    `dynamo:"DocumentMimetype"`
	CourseID         string    `dynamo:"CourseID"`
	Modified         time.Time `dynamo:"Modified"`
	UserID           int       `dynamo:"UserID"`
	Username         string    `dynamo:"Username"`
	FullName         string    `dynamo:"FullName"`
	Version          int       `dynamo:"version"` // For optimistic locking
}

func (row submissionRow) toSubmissionData() SubmissionData {
	var details *UserDetails
	if row.UserID != 0 {
		details = &UserDetails{ID: row.UserID, Username: row.Username, FullName: row.FullName}
	}
	return SubmissionData{
		SubmissionID:     row.SubmissionID,
		DocumentID:       row.DocumentID,
		DocumentURL:      row.DocumentURL,
		DocumentFilename: row.DocumentFilename,
		DocumentMimetype: row.DocumentMimetype,
		Modified:         row.Modified,
		UserDetails:      details,
	}
}

type reviewRow struct {
	GroupContent string `dynamo:"GroupContent,hash"` // "<group id>#<content id>"
	ItemKey      string `dynamo:"ItemKey,range"`     // "<reviewer>#<user>#<question>"
	Reviewer     int    `dynamo:"Reviewer"`
	User         int    `dynamo:"User"`
	Question     string `dynamo:"Question"`
	Answer       string `dynamo:"Answer"`
}

func groupContentKey(groupID int, contentID string) string {
	return fmt.Sprintf("%d#%s", groupID, contentID)
}

func (row reviewRow) toReviewItem(groupID int, contentID string) ReviewItem {
	return ReviewItem{
		Reviewer:    row.Reviewer,
		User:        row.User,
		WorkgroupID: groupID,
		ContentID:   contentID,
		Question:    row.Question,
		Answer:      row.Answer,
	}
}

type completionKey struct {
	StageID string `dynamodbav:"StageID"`
	UserID  int    `dynamodbav:"UserID"`
}

type completionRow struct {
	StageID     string `dynamodbav:"StageID"`
	UserID      int    `dynamodbav:"UserID"`
	CompletedAt string `dynamodbav:"CompletedAt"`
}
