package repository

import (
	"context"
	"errors"
	"fmt"

	"edupay/internal/domain/entities"
	"edupay/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	DefaultPaymentsTableName = "payments"
	PaymentsUserIDIndex      = "user_id-index"

	kindPayment     = "payment"
	kindTransaction = "transaction"
	txnKeyPrefix    = "txn#"
)

// DynamoAPI is the subset of *dynamodb.Client used by the repository.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, opts ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type paymentItem struct {
	ID              string `dynamodbav:"id"`
	Kind            string `dynamodbav:"kind"`
	UserID          string `dynamodbav:"user_id"`
	CourseID        string `dynamodbav:"course_id,omitempty"`
	LessonID        string `dynamodbav:"lesson_id,omitempty"`
	Amount          string `dynamodbav:"amount"`
	Currency        string `dynamodbav:"currency"`
	PaymentMethod   string `dynamodbav:"payment_method"`
	Type            string `dynamodbav:"type"`
	TransactionID   string `dynamodbav:"transaction_id"`
	AdminShare      string `dynamodbav:"admin_share"`
	InstructorShare string `dynamodbav:"instructor_share"`
	InstructorID    string `dynamodbav:"instructor_id,omitempty"`
	Status          string `dynamodbav:"payment_status"`
	FailureReason   string `dynamodbav:"failure_reason,omitempty"`
	RefundReason    string `dynamodbav:"refund_reason,omitempty"`
	RefundID        string `dynamodbav:"refund_id,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
	CompletedAt     string `dynamodbav:"completed_at,omitempty"`
	FailedAt        string `dynamodbav:"failed_at,omitempty"`
	RefundedAt      string `dynamodbav:"refunded_at,omitempty"`
}

// transactionItem reserves a gateway charge id for exactly one payment.
type transactionItem struct {
	ID        string `dynamodbav:"id"`
	Kind      string `dynamodbav:"kind"`
	PaymentID string `dynamodbav:"payment_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists the settlement ledger in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: user_id-index (PK: user_id, SK: created_at)
//
// Each payment is written together with a "txn#<transaction_id>" marker in a
// single transaction so a charge id can never back two payments.
type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	if tableName == "" {
		tableName = DefaultPaymentsTableName
	}
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	payment, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	marker, err := attributevalue.MarshalMap(transactionItem{
		ID:        txnKeyPrefix + p.TransactionID,
		Kind:      kindTransaction,
		PaymentID: p.ID,
		CreatedAt: formatTime(p.CreatedAt),
	})
	if err != nil {
		return entities.Payment{}, err
	}

	notExists := aws.String("attribute_not_exists(#id)")
	names := map[string]string{"#id": "id"}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     payment,
				ConditionExpression:      notExists,
				ExpressionAttributeNames: names,
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     marker,
				ConditionExpression:      notExists,
				ExpressionAttributeNames: names,
			}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 1 &&
			aws.ToString(tce.CancellationReasons[1].Code) == "ConditionalCheckFailed" {
			return entities.Payment{}, fmt.Errorf("%w: %s", interfaces.ErrDuplicateTransactionID, p.TransactionID)
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}
	return unmarshalPayment(out.Item)
}

func (r *PaymentDynamoRepository) GetByTransactionID(ctx context.Context, transactionID string) (entities.Payment, error) {
	if transactionID == "" {
		return entities.Payment{}, nil
	}
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(txnKeyPrefix + transactionID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}
	var marker transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &marker); err != nil {
		return entities.Payment{}, err
	}
	return r.GetByID(ctx, marker.PaymentID)
}

func (r *PaymentDynamoRepository) ListByUserID(ctx context.Context, userID string) ([]entities.Payment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(PaymentsUserIDIndex),
		KeyConditionExpression: aws.String("#user_id = :uid"),
		ExpressionAttributeNames: map[string]string{
			"#user_id": "user_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})

	payments := []entities.Payment{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			payment, err := unmarshalPayment(raw)
			if err != nil {
				return nil, err
			}
			payments = append(payments, payment)
		}
	}
	return payments, nil
}

func (r *PaymentDynamoRepository) ListAll(ctx context.Context) ([]entities.Payment, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#kind = :kind"),
		ExpressionAttributeNames: map[string]string{
			"#kind": "kind",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kind": &types.AttributeValueMemberS{Value: kindPayment},
		},
	})

	payments := []entities.Payment{}
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			payment, err := unmarshalPayment(raw)
			if err != nil {
				return nil, err
			}
			payments = append(payments, payment)
		}
	}
	return payments, nil
}

// Transition moves the stored status from t.From to t.To in one conditional
// write. When the condition fails the stored row is returned with swapped=false.
func (r *PaymentDynamoRepository) Transition(ctx context.Context, id string, t entities.Transition) (entities.Payment, bool, error) {
	tsField, ok := terminalTimestampField(t.To)
	if !ok {
		return entities.Payment{}, false, fmt.Errorf("no ledger timestamp for status %q", t.To)
	}

	at := formatTime(t.At)
	expr := "SET #status = :to, #updated_at = :at, #ts = :at"
	values := map[string]types.AttributeValue{
		":to":   &types.AttributeValueMemberS{Value: string(t.To)},
		":from": &types.AttributeValueMemberS{Value: string(t.From)},
		":at":   &types.AttributeValueMemberS{Value: at},
	}
	names := map[string]string{
		"#status":     "payment_status",
		"#updated_at": "updated_at",
		"#ts":         tsField,
	}
	expr, values, names = setIfPresent(expr, values, names, "failure_reason", t.FailureReason)
	expr, values, names = setIfPresent(expr, values, names, "refund_reason", t.RefundReason)
	expr, values, names = setIfPresent(expr, values, names, "refund_id", t.RefundID)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 idKey(id),
		ConditionExpression:                 aws.String("attribute_exists(#id) AND #status = :from AND attribute_not_exists(#ts)"),
		UpdateExpression:                    aws.String(expr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) == 0 {
				return entities.Payment{}, false, nil
			}
			current, err := unmarshalPayment(cfe.Item)
			return current, false, err
		}
		return entities.Payment{}, false, err
	}

	updated, err := unmarshalPayment(out.Attributes)
	if err != nil {
		return entities.Payment{}, false, err
	}
	return updated, true, nil
}

func terminalTimestampField(s entities.PaymentStatus) (string, bool) {
	switch s {
	case entities.PaymentStatusCompleted:
		return "completed_at", true
	case entities.PaymentStatusFailed:
		return "failed_at", true
	case entities.PaymentStatusRefunded:
		return "refunded_at", true
	}
	return "", false
}

func setIfPresent(expr string, values map[string]types.AttributeValue, names map[string]string, field, value string) (string, map[string]types.AttributeValue, map[string]string) {
	if value == "" {
		return expr, values, names
	}
	expr += fmt.Sprintf(", #%s = :%s", field, field)
	values[":"+field] = &types.AttributeValueMemberS{Value: value}
	names["#"+field] = field
	return expr, values, names
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalPayment(raw map[string]types.AttributeValue) (entities.Payment, error) {
	var it paymentItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:              p.ID,
		Kind:            kindPayment,
		UserID:          p.UserID,
		CourseID:        p.CourseID,
		LessonID:        p.LessonID,
		Amount:          p.Amount.StringFixed(2),
		Currency:        p.Currency,
		PaymentMethod:   string(p.PaymentMethod),
		Type:            string(p.Type),
		TransactionID:   p.TransactionID,
		AdminShare:      p.AdminShare.StringFixed(2),
		InstructorShare: p.InstructorShare.StringFixed(2),
		InstructorID:    p.InstructorID,
		Status:          string(p.Status),
		FailureReason:   p.FailureReason,
		RefundReason:    p.RefundReason,
		RefundID:        p.RefundID,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
		CompletedAt:     formatTimePtr(p.CompletedAt),
		FailedAt:        formatTimePtr(p.FailedAt),
		RefundedAt:      formatTimePtr(p.RefundedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:              it.ID,
		UserID:          it.UserID,
		CourseID:        it.CourseID,
		LessonID:        it.LessonID,
		Amount:          parseDecimal(it.Amount),
		Currency:        it.Currency,
		PaymentMethod:   entities.PaymentMethod(it.PaymentMethod),
		Type:            entities.PaymentType(it.Type),
		TransactionID:   it.TransactionID,
		AdminShare:      parseDecimal(it.AdminShare),
		InstructorShare: parseDecimal(it.InstructorShare),
		InstructorID:    it.InstructorID,
		Status:          entities.PaymentStatus(it.Status),
		FailureReason:   it.FailureReason,
		RefundReason:    it.RefundReason,
		RefundID:        it.RefundID,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
		CompletedAt:     parseTimePtr(it.CompletedAt),
		FailedAt:        parseTimePtr(it.FailedAt),
		RefundedAt:      parseTimePtr(it.RefundedAt),
	}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
