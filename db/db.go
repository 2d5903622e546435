package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	DoctorCollection      *mongo.Collection
	ServiceCollection     *mongo.Collection
	AppointmentCollection *mongo.Collection
	CartCollection        *mongo.Collection
	VisitorCollection     *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("clinicdb")
	UserCollection = database.Collection("users")
	DoctorCollection = database.Collection("doctors")
	ServiceCollection = database.Collection("services")
	AppointmentCollection = database.Collection("appointments")
	CartCollection = database.Collection("carts")
	VisitorCollection = database.Collection("visitors")
}
