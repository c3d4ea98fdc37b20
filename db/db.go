package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	ActivityCollection *mongo.Collection
	InviteCollection   *mongo.Collection
	BookingCollection  *mongo.Collection
	WindowCollection   *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("scheduledb")
	UserCollection = database.Collection("users")
	ActivityCollection = database.Collection("activities")
	InviteCollection = database.Collection("invites")
	BookingCollection = database.Collection("bookings")
	WindowCollection = database.Collection("windows")

	ensureIndexes()
}

// ensureIndexes creates the secondary unique lookup keys: slug scoped to
// owner for activities, token for invites and bookings.
func ensureIndexes() {
	_, err := ActivityCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("activity index: %v", err)
	}
	_, err = InviteCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("invite index: %v", err)
	}
	_, err = BookingCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("booking index: %v", err)
	}
	_, err = BookingCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "startTime", Value: 1}},
	})
	if err != nil {
		log.Printf("booking range index: %v", err)
	}
}
