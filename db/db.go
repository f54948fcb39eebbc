package db

import (
	"context"
	"log"
	"time"

	"gatherly/globals"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UsersCollection         *mongo.Collection
	EventsCollection        *mongo.Collection
	RegistrationsCollection *mongo.Collection
	InterestsCollection     *mongo.Collection
	OrdersCollection        *mongo.Collection
	AttendanceCollection    *mongo.Collection
	Client                  *mongo.Client
)

// Init connects to MongoDB and binds the package-level collections.
func Init() {
	uri := globals.Getenv("MONGODB_URI", "mongodb://localhost:27017")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err = Client.Ping(ctx, nil); err != nil {
		log.Fatalf("MongoDB ping failed: %v", err)
	}

	database := Client.Database(globals.Getenv("MONGODB_DB", "gatherly"))
	UsersCollection = database.Collection("users")
	EventsCollection = database.Collection("events")
	RegistrationsCollection = database.Collection("registrations")
	InterestsCollection = database.Collection("interests")
	OrdersCollection = database.Collection("orders")
	AttendanceCollection = database.Collection("attendance")

	log.Println("Connected to MongoDB:", uri)
}
