package projectapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

type DdbTableNames struct {
	Workgroups  string
	Submissions string
	Reviews     string
	Completions string
}

// DynamoDbClient keeps the project API state in DynamoDB tables.
type DynamoDbClient struct {
	workgroups  dynamo.Table
	submissions dynamo.Table
	reviews     dynamo.Table

	// completions table, accessed with the plain SDK
	ddb              *dynamodb.Client
	completionsTable string
	now              func() time.Time
}

var _ Client = (*DynamoDbClient)(nil)

func NewDynamoDbClient(ddbClient *dynamodb.Client, tables DdbTableNames) *DynamoDbClient {
	db := dynamo.NewFromIface(ddbClient)
	return &DynamoDbClient{
		workgroups:  db.Table(tables.Workgroups),
		submissions: db.Table(tables.Submissions),
		reviews:     db.Table(tables.Reviews),

		ddb:              ddbClient,
		completionsTable: tables.Completions,
		now:              time.Now,
	}
}

func (c *DynamoDbClient) GetWorkgroupByID(ctx context.Context, groupID int) (Workgroup, error) {
	var row workgroupRow
	err := c.workgroups.Get("WorkgroupID", groupID).One(ctx, &row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return Workgroup{}, ErrWorkgroupNotFound(groupID)
		}
		return Workgroup{}, fmt.Errorf("failed to get workgroup %d: %w", groupID, err)
	}
	return row.toWorkgroup(), nil
}

func (c *DynamoDbClient) GetUserWorkgroup(ctx context.Context, userID int, projectID string) (*Workgroup, error) {
	var rows []workgroupRow
	err := c.workgroups.Scan().
		Filter("contains($, ?) AND $ = ?", "UserIDs", userID, "ProjectID", projectID).
		All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan workgroups for user %d: %w", userID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	wg := rows[0].toWorkgroup()
	return &wg, nil
}

func (c *DynamoDbClient) GetLatestSubmissionsByIdentifier(ctx context.Context, groupID int) (map[string]SubmissionData, error) {
	var rows []submissionRow
	err := c.submissions.Get("WorkgroupID", groupID).All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions of group %d: %w", groupID, err)
	}
	res := make(map[string]SubmissionData, len(rows))
	for _, row := range rows {
		res[row.DocumentID] = row.toSubmissionData()
	}
	return res, nil
}

func (c *DynamoDbClient) RecordSubmission(ctx context.Context, rec SubmissionRecord) (Submitted, error) {
	wg, err := c.GetWorkgroupByID(ctx, rec.WorkgroupID)
	if err != nil {
		return Submitted{}, err
	}

	row := submissionRow{
		WorkgroupID:      rec.WorkgroupID,
		DocumentID:       rec.DocumentID,
		SubmissionID:     uuid.NewString(),
		DocumentURL:      rec.DocumentURL,
		DocumentFilename: rec.DocumentFilename,
		DocumentMimetype: rec.DocumentMimetype,
		CourseID:         rec.CourseID,
		Modified:         c.now().UTC(),
		UserID:           rec.UserID,
	}
	for _, u := range wg.Users {
		if u.ID == rec.UserID {
			row.Username = u.Username
			row.FullName = u.FullName
		}
	}

	var prev submissionRow
	err = c.submissions.Get("WorkgroupID", rec.WorkgroupID).
		Range("DocumentID", dynamo.Equal, rec.DocumentID).
		One(ctx, &prev)
	if err != nil && !errors.Is(err, dynamo.ErrNotFound) {
		return Submitted{}, fmt.Errorf("failed to read previous submission: %w", err)
	}
	row.Version = prev.Version + 1

	put := c.submissions.Put(row).If("attribute_not_exists(version) OR version = ?", prev.Version)
	if err := put.Run(ctx); err != nil {
		if dynamo.IsCondCheckFailed(err) {
			return Submitted{}, ErrSubmissionConflict().SetDebug(err)
		}
		return Submitted{}, fmt.Errorf("failed to store submission: %w", err)
	}

	return Submitted{SubmissionID: row.SubmissionID, FileURL: row.DocumentURL}, nil
}

func (c *DynamoDbClient) GetPeerReviewItems(ctx context.Context, userID int, groupID int, contentID string) ([]ReviewItem, error) {
	var rows []reviewRow
	err := c.reviews.Get("GroupContent", groupContentKey(groupID, contentID)).
		Filter("$ = ?", "User", userID).
		All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query peer review items: %w", err)
	}
	return toReviewItems(rows, groupID, contentID), nil
}

func (c *DynamoDbClient) GetGroupReviewItems(ctx context.Context, groupID int, contentID string) ([]ReviewItem, error) {
	var rows []reviewRow
	err := c.reviews.Get("GroupContent", groupContentKey(groupID, contentID)).
		Filter("$ = ?", "User", 0).
		All(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query group review items: %w", err)
	}
	return toReviewItems(rows, groupID, contentID), nil
}

func toReviewItems(rows []reviewRow, groupID int, contentID string) []ReviewItem {
	items := make([]ReviewItem, len(rows))
	for i, row := range rows {
		items[i] = row.toReviewItem(groupID, contentID)
	}
	return items
}

// MarkStageComplete keeps the first completion time when called again.
func (c *DynamoDbClient) MarkStageComplete(ctx context.Context, stageID string, userID int) error {
	key, err := attributevalue.MarshalMap(completionKey{StageID: stageID, UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to marshal completion key: %w", err)
	}

	completedAt := expression.Name("CompletedAt")
	upd := expression.Set(completedAt, expression.IfNotExists(completedAt, expression.Value(c.now().UTC().Format(time.RFC3339))))
	expr, err := expression.NewBuilder().WithUpdate(upd).Build()
	if err != nil {
		return fmt.Errorf("failed to build completion update: %w", err)
	}

	_, err = c.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(c.completionsTable),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("failed to mark stage %s complete for user %d: %w", stageID, userID, err)
	}
	return nil
}

func (c *DynamoDbClient) GetStageCompletions(ctx context.Context, stageID string) (map[int]bool, error) {
	keyCond := expression.Key("StageID").Equal(expression.Value(stageID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build completion query: %w", err)
	}

	res := make(map[int]bool)
	paginator := dynamodb.NewQueryPaginator(c.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(c.completionsTable),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query completions of stage %s: %w", stageID, err)
		}
		var rows []completionRow
		err = attributevalue.UnmarshalListOfMaps(page.Items, &rows)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal completions: %w", err)
		}
		for _, row := range rows {
			res[row.UserID] = true
		}
	}
	return res, nil
}
