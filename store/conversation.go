package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/roadside-api/lifecycle"
	"github.com/bitmark-inc/roadside-api/schema"
)

// Conversations - interface for the chat documents
type Conversations interface {
	CreateConversation(c *schema.Conversation) (*schema.Conversation, error)
	GetConversation(id primitive.ObjectID) (*schema.Conversation, error)
	GetConversationByRequest(requestID primitive.ObjectID) (*schema.Conversation, error)
	ListConversations(accountID string) ([]schema.Conversation, error)
	AppendMessage(id primitive.ObjectID, message schema.Message) error
	MarkConversationRead(id primitive.ObjectID, readerID string) (int64, error)
	UnreadCount(accountID string) (int64, error)
	ArchiveConversation(id primitive.ObjectID) error
}

// CreateConversation inserts the conversation of a request. If another caller
// created it first, the existing conversation is returned.
func (m *mongoDB) CreateConversation(c *schema.Conversation) (*schema.Conversation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.Messages == nil {
		c.Messages = []schema.Message{}
	}

	if _, err := m.collection(schema.ConversationCollection).InsertOne(ctx, c); err != nil {
		if isDuplicateKey(err) {
			return m.GetConversationByRequest(c.RequestID)
		}
		return nil, err
	}
	return c, nil
}

// GetConversation finds a conversation by id
func (m *mongoDB) GetConversation(id primitive.ObjectID) (*schema.Conversation, error) {
	return m.findConversation(bson.M{"_id": id})
}

// GetConversationByRequest finds the conversation of a request
func (m *mongoDB) GetConversationByRequest(requestID primitive.ObjectID) (*schema.Conversation, error) {
	return m.findConversation(bson.M{"request_id": requestID})
}

func (m *mongoDB) findConversation(query bson.M) (*schema.Conversation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var c schema.Conversation
	if err := m.collection(schema.ConversationCollection).FindOne(ctx, query).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, lifecycle.ErrConversationNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListConversations returns the active conversations of an account with only
// their last message, most recent activity first
func (m *mongoDB) ListConversations(accountID string) ([]schema.Conversation, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"messages": bson.M{"$slice": -1}}).
		SetSort(bson.D{{Key: "last_message_at", Value: -1}, {Key: "created_at", Value: -1}})

	cur, err := m.collection(schema.ConversationCollection).Find(ctx, participantQuery(accountID), opts)
	if err != nil {
		return nil, err
	}

	conversations := make([]schema.Conversation, 0)
	if err := cur.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// AppendMessage pushes a message at the end of an active thread. Mongo
// applies pushes on one document in arrival order, which gives the total order
// of a conversation.
func (m *mongoDB) AppendMessage(id primitive.ObjectID, message schema.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := m.collection(schema.ConversationCollection).UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{
			"$push": bson.M{"messages": message},
			"$set":  bson.M{"last_message_at": message.Timestamp},
		})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := m.GetConversation(id); err != nil {
			return err
		}
		return lifecycle.ErrConversationArchived
	}
	return nil
}

// MarkConversationRead flags every message not sent by the reader as read and
// returns whether anything changed
func (m *mongoDB) MarkConversationRead(id primitive.ObjectID, readerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	unread := bson.M{"sender": bson.M{"$ne": readerID}, "read": false}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"m.sender": bson.M{"$ne": readerID}, "m.read": false},
		},
	})

	result, err := m.collection(schema.ConversationCollection).UpdateOne(ctx,
		bson.M{
			"_id":      id,
			"messages": bson.M{"$elemMatch": unread},
		},
		bson.M{"$set": bson.M{"messages.$[m].read": true}},
		opts)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// UnreadCount sums the unread messages addressed to an account over its
// active conversations
func (m *mongoDB) UnreadCount(accountID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: participantQuery(accountID)}},
		{{Key: "$project", Value: bson.M{"messages.sender": 1, "messages.read": 1}}},
		{{Key: "$unwind", Value: "$messages"}},
		{{Key: "$match", Value: bson.M{
			"messages.read":   false,
			"messages.sender": bson.M{"$ne": accountID},
		}}},
		{{Key: "$count", Value: "unread"}},
	}

	cur, err := m.collection(schema.ConversationCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var results []struct {
		Unread int64 `bson:"unread"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Unread, nil
}

// ArchiveConversation hides a conversation from the participants' lists
func (m *mongoDB) ArchiveConversation(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := m.collection(schema.ConversationCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return lifecycle.ErrConversationNotFound
	}
	return nil
}

func participantQuery(accountID string) bson.M {
	return bson.M{
		"is_active": true,
		"$or": bson.A{
			bson.M{"requester": accountID},
			bson.M{"helper": accountID},
		},
	}
}
