package seed

import "github.com/franciscosanchezn/nutri-regimen-api/internal/models"

// DemoPassword is the password of every seeded demo user.
const DemoPassword = "nutri-regimen-demo"

type ingredientRow struct {
	name, category                            string
	calories                                  int
	protein, carbs, fat, fiber, sugar, sodium float64
}

var ingredients = []ingredientRow{
	{"Chicken Breast", "Protein", 165, 31.0, 0.0, 3.6, 0.0, 0.0, 74.0},
	{"Salmon Fillet", "Protein", 208, 25.4, 0.0, 12.4, 0.0, 0.0, 59.0},
	{"Ground Turkey", "Protein", 189, 27.4, 0.0, 8.3, 0.0, 0.0, 98.0},
	{"Eggs", "Protein", 155, 13.0, 1.1, 11.0, 0.0, 1.1, 124.0},
	{"Greek Yogurt", "Protein", 97, 10.0, 3.6, 5.0, 0.0, 3.6, 36.0},
	{"Tofu", "Protein", 76, 8.0, 1.9, 4.8, 0.3, 0.6, 7.0},
	{"Black Beans", "Protein", 132, 8.9, 23.0, 0.5, 8.7, 0.3, 2.0},
	{"Lentils", "Protein", 116, 9.0, 20.0, 0.4, 7.9, 1.8, 2.0},
	{"Quinoa", "Protein", 120, 4.4, 22.0, 1.9, 2.8, 0.9, 5.0},
	{"Broccoli", "Vegetable", 34, 2.8, 7.0, 0.4, 2.6, 1.5, 33.0},
	{"Spinach", "Vegetable", 23, 2.9, 3.6, 0.4, 2.2, 0.4, 79.0},
	{"Bell Peppers", "Vegetable", 31, 1.0, 7.0, 0.3, 2.5, 4.2, 4.0},
	{"Carrots", "Vegetable", 41, 0.9, 10.0, 0.2, 2.8, 4.7, 69.0},
	{"Sweet Potato", "Vegetable", 86, 1.6, 20.0, 0.1, 3.0, 4.2, 5.0},
	{"Zucchini", "Vegetable", 17, 1.2, 3.1, 0.3, 1.0, 2.5, 8.0},
	{"Kale", "Vegetable", 49, 4.3, 9.0, 0.9, 3.6, 2.3, 38.0},
	{"Cauliflower", "Vegetable", 25, 1.9, 5.0, 0.3, 2.0, 1.9, 30.0},
	{"Asparagus", "Vegetable", 20, 2.2, 3.9, 0.1, 2.1, 1.9, 2.0},
	{"Brussels Sprouts", "Vegetable", 43, 3.4, 9.0, 0.3, 3.8, 2.2, 25.0},
	{"Banana", "Fruit", 89, 1.1, 23.0, 0.3, 2.6, 12.0, 1.0},
	{"Apple", "Fruit", 52, 0.3, 14.0, 0.2, 2.4, 10.0, 1.0},
	{"Blueberries", "Fruit", 57, 0.7, 14.0, 0.3, 2.4, 10.0, 1.0},
	{"Strawberries", "Fruit", 32, 0.7, 8.0, 0.3, 2.0, 4.9, 1.0},
	{"Orange", "Fruit", 47, 0.9, 12.0, 0.1, 2.4, 9.4, 0.0},
	{"Avocado", "Fruit", 160, 2.0, 9.0, 15.0, 7.0, 0.7, 7.0},
	{"Brown Rice", "Grain", 111, 2.6, 23.0, 0.9, 1.8, 0.4, 5.0},
	{"Oats", "Grain", 389, 16.9, 66.0, 6.9, 10.6, 0.0, 2.0},
	{"Whole Wheat Bread", "Grain", 247, 13.0, 41.0, 4.2, 7.0, 6.0, 540.0},
	{"Pasta", "Grain", 131, 5.0, 25.0, 1.1, 1.8, 0.6, 1.0},
	{"Milk", "Dairy", 42, 3.4, 5.0, 1.0, 0.0, 5.0, 44.0},
	{"Cheddar Cheese", "Dairy", 403, 25.0, 1.3, 33.0, 0.0, 0.5, 621.0},
	{"Almond Milk", "Dairy Alternative", 17, 0.6, 1.5, 1.1, 0.3, 0.0, 63.0},
	{"Almonds", "Nuts", 579, 21.0, 22.0, 50.0, 12.0, 4.4, 1.0},
	{"Walnuts", "Nuts", 654, 15.0, 14.0, 65.0, 6.7, 2.6, 2.0},
	{"Chia Seeds", "Seeds", 486, 17.0, 42.0, 31.0, 34.0, 0.0, 16.0},
	{"Olive Oil", "Oil", 884, 0.0, 0.0, 100.0, 0.0, 0.0, 2.0},
	{"Coconut Oil", "Oil", 862, 0.0, 0.0, 100.0, 0.0, 0.0, 0.0},
	{"Garlic", "Herb", 149, 6.4, 33.0, 0.5, 2.1, 1.0, 17.0},
	{"Ginger", "Spice", 80, 1.8, 18.0, 0.8, 2.0, 1.7, 13.0},
	{"Basil", "Herb", 22, 3.2, 2.6, 0.6, 1.6, 0.3, 4.0},
	{"Oregano", "Herb", 265, 9.0, 69.0, 4.3, 42.5, 4.1, 25.0},
}

type userRow struct {
	subject, email, username, fullName, avatar string
}

var users = []userRow{
	{"550e8400-e29b-41d4-a716-446655440001", "john.doe@example.com", "johndoe", "John Doe", "https://example.com/avatars/john.jpg"},
	{"550e8400-e29b-41d4-a716-446655440002", "jane.smith@example.com", "janesmith", "Jane Smith", "https://example.com/avatars/jane.jpg"},
	{"550e8400-e29b-41d4-a716-446655440003", "mike.wilson@example.com", "mikewilson", "Mike Wilson", "https://example.com/avatars/mike.jpg"},
	{"550e8400-e29b-41d4-a716-446655440004", "sarah.johnson@example.com", "sarahjohnson", "Sarah Johnson", "https://example.com/avatars/sarah.jpg"},
}

type amount struct {
	ingredient string
	quantity   float64
	unit       string
}

// owner indexes users; -1 leaves the recipe unowned.
type recipeRow struct {
	name, description, instructions string
	owner                           int
	ingredients                     []amount
}

var recipes = []recipeRow{
	{
		name:        "Grilled Chicken with Quinoa Bowl",
		description: "A healthy, protein-packed bowl with grilled chicken breast, fluffy quinoa, and roasted vegetables",
		instructions: "1. Season chicken breast with salt, pepper, and herbs\n2. Grill chicken for 6-7 minutes per side until cooked through\n" +
			"3. Cook quinoa according to package directions\n4. Roast broccoli and bell peppers at 200°C for 20 minutes\n" +
			"5. Slice chicken and serve over quinoa with vegetables\n6. Drizzle with olive oil and lemon juice",
		owner: -1,
		ingredients: []amount{
			{"Chicken Breast", 150, "g"}, {"Quinoa", 80, "g"}, {"Broccoli", 100, "g"},
			{"Bell Peppers", 80, "g"}, {"Olive Oil", 10, "ml"},
		},
	},
	{
		name:        "Salmon and Sweet Potato Power Bowl",
		description: "Omega-3 rich salmon with roasted sweet potato and leafy greens",
		instructions: "1. Preheat oven to 220°C\n2. Cut sweet potato into cubes and roast for 25 minutes\n" +
			"3. Season salmon with herbs and bake for 12-15 minutes\n4. Massage kale with olive oil and lemon\n" +
			"5. Combine all ingredients in a bowl\n6. Top with avocado slices",
		owner: 1,
		ingredients: []amount{
			{"Salmon Fillet", 120, "g"}, {"Sweet Potato", 150, "g"}, {"Kale", 60, "g"},
			{"Avocado", 50, "g"}, {"Olive Oil", 8, "ml"},
		},
	},
	{
		name:        "Mediterranean Bean Salad",
		description: "Fresh and vibrant salad with beans, vegetables, and Mediterranean flavors",
		instructions: "1. Drain and rinse the beans\n2. Dice the bell peppers\n" +
			"3. Mix olive oil, lemon juice and oregano for dressing\n4. Combine all ingredients and toss with dressing\n" +
			"5. Let marinate for 30 minutes before serving",
		owner: 0,
		ingredients: []amount{
			{"Black Beans", 100, "g"}, {"Bell Peppers", 80, "g"}, {"Olive Oil", 15, "ml"}, {"Oregano", 2, "g"},
		},
	},
	{
		name:        "Turkey and Vegetable Stir-Fry",
		description: "Quick and healthy stir-fry with lean ground turkey and colorful vegetables",
		instructions: "1. Heat oil in a large pan or wok\n2. Cook ground turkey until browned\n" +
			"3. Add garlic and ginger, cook for 1 minute\n4. Add vegetables and stir-fry for 5-7 minutes\n" +
			"5. Season with soy sauce and herbs\n6. Serve over brown rice",
		owner: 2,
		ingredients: []amount{
			{"Ground Turkey", 120, "g"}, {"Broccoli", 80, "g"}, {"Carrots", 60, "g"}, {"Garlic", 5, "g"},
			{"Ginger", 3, "g"}, {"Brown Rice", 80, "g"}, {"Olive Oil", 10, "ml"},
		},
	},
	{
		name:        "Greek Yogurt Berry Parfait",
		description: "Protein-rich breakfast parfait with Greek yogurt, berries, and nuts",
		instructions: "1. Layer Greek yogurt in a glass or bowl\n2. Add a layer of mixed berries\n" +
			"3. Sprinkle with chopped almonds\n4. Repeat layers\n5. Serve immediately",
		owner: 3,
		ingredients: []amount{
			{"Greek Yogurt", 150, "g"}, {"Blueberries", 50, "g"}, {"Strawberries", 50, "g"}, {"Almonds", 20, "g"},
		},
	},
	{
		name:        "Vegetarian Lentil Curry",
		description: "Hearty and flavorful lentil curry packed with vegetables and spices",
		instructions: "1. Sauté garlic and ginger in oil\n2. Add curry spices and cook for 1 minute\n" +
			"3. Add lentils and vegetables\n4. Simmer for 20-25 minutes until lentils are tender\n" +
			"5. Season with salt and pepper\n6. Serve with brown rice",
		owner: 1,
		ingredients: []amount{
			{"Lentils", 100, "g"}, {"Spinach", 80, "g"}, {"Carrots", 60, "g"}, {"Garlic", 8, "g"},
			{"Ginger", 5, "g"}, {"Coconut Oil", 10, "ml"},
		},
	},
	{
		name:        "Tofu Buddha Bowl",
		description: "Nutritious plant-based bowl with marinated tofu and fresh vegetables",
		instructions: "1. Press tofu and cut into cubes\n2. Marinate tofu in soy sauce and spices\n" +
			"3. Pan-fry tofu until golden\n4. Prepare quinoa and roast vegetables\n" +
			"5. Arrange all components in a bowl\n6. Drizzle with tahini dressing",
		owner: 2,
		ingredients: []amount{
			{"Tofu", 120, "g"}, {"Quinoa", 70, "g"}, {"Kale", 60, "g"}, {"Carrots", 50, "g"},
			{"Avocado", 60, "g"}, {"Olive Oil", 12, "ml"},
		},
	},
	{
		name:        "Overnight Oats with Berries",
		description: "Make-ahead breakfast with oats, milk, and fresh berries",
		instructions: "1. Mix oats with milk in a jar\n2. Add chia seeds\n3. Refrigerate overnight\n" +
			"4. In the morning, top with berries\n5. Add nuts for extra crunch",
		owner: 3,
		ingredients: []amount{
			{"Oats", 50, "g"}, {"Almond Milk", 150, "ml"}, {"Chia Seeds", 10, "g"},
			{"Blueberries", 40, "g"}, {"Strawberries", 40, "g"}, {"Walnuts", 15, "g"},
		},
	},
	{
		name:        "Egg and Vegetable Scramble",
		description: "Protein-rich breakfast scramble with eggs and colorful vegetables",
		instructions: "1. Heat oil in a non-stick pan\n2. Sauté vegetables until tender\n" +
			"3. Beat eggs and pour into pan\n4. Scramble eggs with vegetables\n5. Serve with whole grain toast",
		owner: 0,
		ingredients: []amount{
			{"Eggs", 120, "g"}, {"Spinach", 50, "g"}, {"Bell Peppers", 60, "g"},
			{"Olive Oil", 8, "ml"}, {"Whole Wheat Bread", 30, "g"},
		},
	},
	{
		name:        "Asian-Style Lettuce Wraps",
		description: "Light and flavorful lettuce wraps with seasoned protein and vegetables",
		instructions: "1. Cook ground turkey with garlic and ginger\n2. Add vegetables and stir-fry briefly\n" +
			"3. Wash and separate lettuce leaves\n4. Fill lettuce cups with the mixture",
		owner: 1,
		ingredients: []amount{
			{"Ground Turkey", 100, "g"}, {"Garlic", 6, "g"}, {"Ginger", 4, "g"},
			{"Carrots", 40, "g"}, {"Bell Peppers", 50, "g"}, {"Olive Oil", 8, "ml"},
		},
	},
}

type slot struct {
	day    models.DayOfWeek
	meal   models.MealType
	recipe string
}

// owner indexes users; -1 makes an unowned template.
type mealPlanRow struct {
	name  string
	owner int
	slots []slot
}

var mealPlans = []mealPlanRow{
	{"Healthy Weight Loss Plan", 0, []slot{
		{models.Monday, models.Breakfast, "Greek Yogurt Berry Parfait"},
		{models.Monday, models.Lunch, "Mediterranean Bean Salad"},
		{models.Monday, models.Dinner, "Grilled Chicken with Quinoa Bowl"},
		{models.Tuesday, models.Breakfast, "Overnight Oats with Berries"},
		{models.Tuesday, models.Lunch, "Asian-Style Lettuce Wraps"},
		{models.Tuesday, models.Dinner, "Salmon and Sweet Potato Power Bowl"},
		{models.Wednesday, models.Breakfast, "Egg and Vegetable Scramble"},
		{models.Wednesday, models.Lunch, "Tofu Buddha Bowl"},
		{models.Wednesday, models.Dinner, "Turkey and Vegetable Stir-Fry"},
	}},
	{"High Protein Muscle Building", 1, []slot{
		{models.Monday, models.Breakfast, "Egg and Vegetable Scramble"},
		{models.Monday, models.Lunch, "Grilled Chicken with Quinoa Bowl"},
		{models.Monday, models.Dinner, "Salmon and Sweet Potato Power Bowl"},
		{models.Tuesday, models.Breakfast, "Greek Yogurt Berry Parfait"},
		{models.Tuesday, models.Lunch, "Turkey and Vegetable Stir-Fry"},
		{models.Tuesday, models.Dinner, "Tofu Buddha Bowl"},
		{models.Wednesday, models.Breakfast, "Overnight Oats with Berries"},
		{models.Wednesday, models.Lunch, "Asian-Style Lettuce Wraps"},
		{models.Wednesday, models.Dinner, "Vegetarian Lentil Curry"},
	}},
	{"Plant-Based Nutrition Plan", 2, []slot{
		{models.Monday, models.Breakfast, "Overnight Oats with Berries"},
		{models.Monday, models.Lunch, "Tofu Buddha Bowl"},
		{models.Monday, models.Dinner, "Vegetarian Lentil Curry"},
		{models.Tuesday, models.Breakfast, "Greek Yogurt Berry Parfait"},
		{models.Tuesday, models.Lunch, "Mediterranean Bean Salad"},
		{models.Tuesday, models.Dinner, "Tofu Buddha Bowl"},
		{models.Wednesday, models.Breakfast, "Overnight Oats with Berries"},
		{models.Wednesday, models.Lunch, "Vegetarian Lentil Curry"},
		{models.Wednesday, models.Dinner, "Mediterranean Bean Salad"},
	}},
	{"Balanced Family Meals", 3, []slot{
		{models.Monday, models.Breakfast, "Egg and Vegetable Scramble"},
		{models.Monday, models.Lunch, "Turkey and Vegetable Stir-Fry"},
		{models.Monday, models.Dinner, "Grilled Chicken with Quinoa Bowl"},
		{models.Tuesday, models.Breakfast, "Greek Yogurt Berry Parfait"},
		{models.Tuesday, models.Lunch, "Salmon and Sweet Potato Power Bowl"},
		{models.Tuesday, models.Dinner, "Asian-Style Lettuce Wraps"},
		{models.Wednesday, models.Breakfast, "Overnight Oats with Berries"},
		{models.Wednesday, models.Lunch, "Mediterranean Bean Salad"},
		{models.Wednesday, models.Dinner, "Vegetarian Lentil Curry"},
	}},
	{"Starter Week Template", -1, []slot{
		{models.Monday, models.Breakfast, "Overnight Oats with Berries"},
		{models.Monday, models.Dinner, "Grilled Chicken with Quinoa Bowl"},
		{models.Thursday, models.Lunch, "Mediterranean Bean Salad"},
		{models.Friday, models.Dinner, "Vegetarian Lentil Curry"},
		{models.Saturday, models.Breakfast, "Egg and Vegetable Scramble"},
		{models.Sunday, models.Snack, "Greek Yogurt Berry Parfait"},
	}},
}

// assignmentWeeks is how many weeks, starting with the current one, each
// demo user gets their plan assigned for.
const assignmentWeeks = 4
