package main

import (
	"log"
	"os"

	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/mapper"
	"foodiebot-be/internal/model"
	"foodiebot-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Seeding Product Catalog...")

	products := []entity.Product{
		{
			Name: "Spicy Dragon Burger", Category: "burgers",
			Description: "Double patty with ghost pepper sauce and jalapenos",
			Ingredients: []string{"beef", "ghost pepper sauce", "jalapeno", "cheddar", "brioche bun"},
			Price:       11.50, Calories: 780, PrepTime: "12 min",
			DietaryTags: []string{}, MoodTags: []string{"adventurous", "indulgent"},
			Allergens: []string{"gluten", "dairy"}, PopularityScore: 82,
			ChefSpecial: true, SpiceLevel: 4,
		},
		{
			Name: "Garden Harvest Bowl", Category: "bowls",
			Description: "Roasted seasonal vegetables over quinoa with tahini drizzle",
			Ingredients: []string{"quinoa", "sweet potato", "kale", "chickpeas", "tahini"},
			Price:       9.25, Calories: 420, PrepTime: "8 min",
			DietaryTags: []string{"vegan", "gluten_free"}, MoodTags: []string{"healthy", "comfort"},
			Allergens: []string{"sesame"}, PopularityScore: 67,
		},
		{
			Name: "Classic Cheeseburger", Category: "burgers",
			Description: "Single patty, american cheese, pickles, house sauce",
			Ingredients: []string{"beef", "american cheese", "pickles", "house sauce", "sesame bun"},
			Price:       6.75, Calories: 560, PrepTime: "10 min",
			DietaryTags: []string{}, MoodTags: []string{"comfort", "nostalgic"},
			Allergens: []string{"gluten", "dairy", "sesame"}, PopularityScore: 90,
		},
		{
			Name: "Protein Power Plate", Category: "plates",
			Description: "Grilled chicken breast, black beans, and charred broccoli",
			Ingredients: []string{"chicken breast", "black beans", "broccoli", "olive oil"},
			Price:       12.00, Calories: 610, PrepTime: "14 min",
			DietaryTags: []string{"gluten_free", "keto"}, MoodTags: []string{"healthy"},
			Allergens: []string{}, PopularityScore: 58,
		},
		{
			Name: "Midnight Veggie Pizza", Category: "pizza",
			Description: "Black garlic base with mushrooms, olives, and vegan mozzarella",
			Ingredients: []string{"pizza dough", "black garlic", "mushroom", "olive", "vegan mozzarella"},
			Price:       10.50, Calories: 640, PrepTime: "15 min",
			DietaryTags: []string{"vegetarian", "vegan"}, MoodTags: []string{"adventurous", "indulgent"},
			Allergens: []string{"gluten"}, PopularityScore: 61,
			ChefSpecial: true,
		},
		{
			Name: "Zen Cucumber Salad", Category: "salads",
			Description: "Chilled cucumber ribbons with rice vinegar and sesame",
			Ingredients: []string{"cucumber", "rice vinegar", "sesame seeds", "scallion"},
			Price:       5.25, Calories: 140, PrepTime: "5 min",
			DietaryTags: []string{"vegan", "gluten_free", "low_sodium"}, MoodTags: []string{"healthy", "light"},
			Allergens: []string{"sesame"}, PopularityScore: 44,
		},
		{
			Name: "Firecracker Wings", Category: "sides",
			Description: "Crispy wings tossed in habanero honey glaze",
			Ingredients: []string{"chicken wings", "habanero", "honey", "butter"},
			Price:       8.50, Calories: 720, PrepTime: "16 min",
			DietaryTags: []string{"gluten_free"}, MoodTags: []string{"adventurous", "indulgent"},
			Allergens: []string{"dairy"}, PopularityScore: 75,
			SpiceLevel: 5, LimitedTime: true,
		},
		{
			Name: "Keto Cauliflower Mac", Category: "sides",
			Description: "Roasted cauliflower in three-cheese sauce",
			Ingredients: []string{"cauliflower", "cheddar", "gruyere", "parmesan", "cream"},
			Price:       7.00, Calories: 380, PrepTime: "11 min",
			DietaryTags: []string{"keto", "vegetarian", "gluten_free"}, MoodTags: []string{"comfort"},
			Allergens: []string{"dairy"}, PopularityScore: 52,
		},
	}

	productMapper := mapper.NewProductMapper()
	for i := range products {
		p := &products[i]

		var existing model.Product
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			log.Printf("Product '%s' already exists, skipping...", p.Name)
			continue
		}

		row := productMapper.ToModel(p)
		if err := db.Create(row).Error; err != nil {
			log.Printf("Error creating product '%s': %v", p.Name, err)
		} else {
			log.Printf("Created product: %s ($%.2f)", p.Name, p.Price)
		}
	}

	log.Println("Product seeding completed!")
}
