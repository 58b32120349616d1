package service

import (
	"github.com/brainspark/brainspark-backend/internal/model"
)

// defaultQuestions holds the built-in question sets, ten per subject.
var defaultQuestions = map[string][]model.Question{
	"Math": {
		{ID: 1, QuestionText: "What is the value of π (pi) rounded to two decimal places?", Options: []string{"3.14", "3.16", "3.12", "3.18"}, CorrectAnswer: 0, Explanation: "π (pi) is approximately 3.14159..., which rounds to 3.14 at two decimal places."},
		{ID: 2, QuestionText: "What is the derivative of x²?", Options: []string{"x", "2x", "2x²", "x²"}, CorrectAnswer: 1, Explanation: "Using the power rule, d/dx(x²) = 2x¹ = 2x."},
		{ID: 3, QuestionText: "What is the integral of 2x dx?", Options: []string{"x²", "x² + C", "2x²", "x + C"}, CorrectAnswer: 1, Explanation: "The integral of 2x is x² + C, where C is the constant of integration."},
		{ID: 4, QuestionText: "What is the value of log₁₀(1000)?", Options: []string{"2", "3", "4", "10"}, CorrectAnswer: 1, Explanation: "log₁₀(1000) = 3 because 10³ = 1000."},
		{ID: 5, QuestionText: "In a right triangle, if one angle is 90° and another is 45°, what is the third angle?", Options: []string{"30°", "45°", "60°", "90°"}, CorrectAnswer: 1, Explanation: "The sum of angles in a triangle is 180°. So 180° - 90° - 45° = 45°."},
		{ID: 6, QuestionText: "What is 15! / 13! equal to?", Options: []string{"210", "180", "120", "30"}, CorrectAnswer: 0, Explanation: "15!/13! = 15 × 14 = 210, since all terms below 14 cancel out."},
		{ID: 7, QuestionText: "What is the sum of interior angles of a hexagon?", Options: []string{"540°", "720°", "900°", "1080°"}, CorrectAnswer: 1, Explanation: "Sum of interior angles = (n-2) × 180° = (6-2) × 180° = 720°."},
		{ID: 8, QuestionText: "What is the value of √(144)?", Options: []string{"10", "11", "12", "13"}, CorrectAnswer: 2, Explanation: "√144 = 12 because 12 × 12 = 144."},
		{ID: 9, QuestionText: "If f(x) = 3x + 7, what is f(5)?", Options: []string{"15", "22", "20", "25"}, CorrectAnswer: 1, Explanation: "f(5) = 3(5) + 7 = 15 + 7 = 22."},
		{ID: 10, QuestionText: "What is the LCM of 12 and 18?", Options: []string{"24", "36", "54", "72"}, CorrectAnswer: 1, Explanation: "LCM(12,18) = 36. The smallest number divisible by both 12 and 18 is 36."},
	},
	"Python": {
		{ID: 1, QuestionText: "What is the output of print(type(5))?", Options: []string{"<class 'float'>", "<class 'int'>", "<class 'str'>", "<class 'num'>"}, CorrectAnswer: 1, Explanation: "5 is a whole number, so Python treats it as an integer (int)."},
		{ID: 2, QuestionText: "Which keyword is used to define a function in Python?", Options: []string{"func", "define", "def", "function"}, CorrectAnswer: 2, Explanation: "'def' is the Python keyword used to define functions, e.g., def my_function()."},
		{ID: 3, QuestionText: "What does 'len([1, 2, 3])' return?", Options: []string{"2", "3", "4", "1"}, CorrectAnswer: 1, Explanation: "len() returns the number of elements in a list. [1, 2, 3] has 3 elements."},
		{ID: 4, QuestionText: "Which data type is immutable in Python?", Options: []string{"List", "Dictionary", "Set", "Tuple"}, CorrectAnswer: 3, Explanation: "Tuples are immutable — once created, their elements cannot be changed."},
		{ID: 5, QuestionText: "What is the output of 'Hello'[1]?", Options: []string{"H", "e", "l", "o"}, CorrectAnswer: 1, Explanation: "String indexing starts at 0, so index 1 is the second character 'e'."},
		{ID: 6, QuestionText: "Which operator is used for floor division in Python?", Options: []string{"/", "//", "%", "**"}, CorrectAnswer: 1, Explanation: "// performs floor division, returning the largest integer less than or equal to the result."},
		{ID: 7, QuestionText: "What does the 'pass' statement do?", Options: []string{"Exits loop", "Skips iteration", "Does nothing", "Returns None"}, CorrectAnswer: 2, Explanation: "'pass' is a null operation — it does nothing and is used as a placeholder."},
		{ID: 8, QuestionText: "How do you create a list comprehension in Python?", Options: []string{"[x for x in range(5)]", "{x for x in range(5)}", "(x for x in range(5))", "<x for x in range(5)>"}, CorrectAnswer: 0, Explanation: "List comprehensions use square brackets: [expression for item in iterable]."},
		{ID: 9, QuestionText: "Which method adds an element at the end of a list?", Options: []string{"add()", "push()", "append()", "insert()"}, CorrectAnswer: 2, Explanation: "append() adds a single element to the end of a list."},
		{ID: 10, QuestionText: "What is the output of bool('')?", Options: []string{"True", "False", "None", "Error"}, CorrectAnswer: 1, Explanation: "Empty strings are falsy in Python, so bool('') returns False."},
	},
	"DBMS": {
		{ID: 1, QuestionText: "What does SQL stand for?", Options: []string{"Structured Query Language", "Simple Query Language", "Standard Query Language", "Sequential Query Language"}, CorrectAnswer: 0, Explanation: "SQL stands for Structured Query Language, used to manage relational databases."},
		{ID: 2, QuestionText: "Which normal form removes partial dependencies?", Options: []string{"1NF", "2NF", "3NF", "BCNF"}, CorrectAnswer: 1, Explanation: "2NF removes partial dependencies — every non-key attribute must depend on the entire primary key."},
		{ID: 3, QuestionText: "What is a primary key?", Options: []string{"A key that allows NULL", "A unique identifier for records", "A foreign reference", "An index column"}, CorrectAnswer: 1, Explanation: "A primary key uniquely identifies each record in a table and cannot be NULL."},
		{ID: 4, QuestionText: "Which SQL clause is used to filter grouped results?", Options: []string{"WHERE", "GROUP BY", "HAVING", "ORDER BY"}, CorrectAnswer: 2, Explanation: "HAVING filters groups after GROUP BY, while WHERE filters individual rows before grouping."},
		{ID: 5, QuestionText: "What type of join returns all rows from both tables?", Options: []string{"INNER JOIN", "LEFT JOIN", "RIGHT JOIN", "FULL OUTER JOIN"}, CorrectAnswer: 3, Explanation: "FULL OUTER JOIN returns all rows from both tables, with NULLs where there's no match."},
		{ID: 6, QuestionText: "What does ACID stand for in database transactions?", Options: []string{"Atomicity, Consistency, Isolation, Durability", "Association, Consistency, Isolation, Data", "Atomicity, Completeness, Isolation, Durability", "Atomicity, Consistency, Integration, Durability"}, CorrectAnswer: 0, Explanation: "ACID ensures reliable transactions: Atomicity, Consistency, Isolation, and Durability."},
		{ID: 7, QuestionText: "Which command is used to remove a table from a database?", Options: []string{"DELETE TABLE", "REMOVE TABLE", "DROP TABLE", "CLEAR TABLE"}, CorrectAnswer: 2, Explanation: "DROP TABLE removes the entire table structure and data from the database."},
		{ID: 8, QuestionText: "What is a foreign key?", Options: []string{"Primary key of same table", "Key referencing another table's primary key", "Unique key", "Composite key"}, CorrectAnswer: 1, Explanation: "A foreign key references the primary key of another table, creating a relationship between tables."},
		{ID: 9, QuestionText: "Which SQL command is used to update existing data?", Options: []string{"MODIFY", "ALTER", "UPDATE", "CHANGE"}, CorrectAnswer: 2, Explanation: "UPDATE modifies existing records: UPDATE table SET column = value WHERE condition."},
		{ID: 10, QuestionText: "What is normalization in DBMS?", Options: []string{"Adding redundancy", "Process of organizing data to reduce redundancy", "Creating backups", "Encrypting data"}, CorrectAnswer: 1, Explanation: "Normalization organizes data to minimize redundancy and dependency, improving data integrity."},
	},
	"Aptitude": {
		{ID: 1, QuestionText: "A train travels 360 km in 6 hours. What is its speed?", Options: []string{"50 km/h", "55 km/h", "60 km/h", "65 km/h"}, CorrectAnswer: 2, Explanation: "Speed = Distance/Time = 360/6 = 60 km/h."},
		{ID: 2, QuestionText: "If 5x + 3 = 28, what is x?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: 2, Explanation: "5x + 3 = 28 → 5x = 25 → x = 5."},
		{ID: 3, QuestionText: "What is the next number in the series: 2, 6, 12, 20, ?", Options: []string{"28", "30", "32", "36"}, CorrectAnswer: 1, Explanation: "Differences: 4, 6, 8, ... next difference is 10, so 20 + 10 = 30."},
		{ID: 4, QuestionText: "A shopkeeper sells an item at 20% profit. If cost price is ₹500, what is the selling price?", Options: []string{"₹550", "₹580", "₹600", "₹620"}, CorrectAnswer: 2, Explanation: "Selling price = 500 + 20% of 500 = 500 + 100 = ₹600."},
		{ID: 5, QuestionText: "If A can do a work in 10 days and B in 15 days, together they complete it in?", Options: []string{"5 days", "6 days", "7 days", "8 days"}, CorrectAnswer: 1, Explanation: "Combined rate = 1/10 + 1/15 = 5/30 = 1/6. So together they finish in 6 days."},
		{ID: 6, QuestionText: "What is 40% of 250?", Options: []string{"80", "90", "100", "110"}, CorrectAnswer: 2, Explanation: "40% of 250 = (40/100) × 250 = 100."},
		{ID: 7, QuestionText: "The ratio of boys to girls in a class is 3:2. If there are 30 boys, how many girls are there?", Options: []string{"15", "18", "20", "25"}, CorrectAnswer: 2, Explanation: "3:2 ratio with 30 boys means each part = 10, so girls = 2 × 10 = 20."},
		{ID: 8, QuestionText: "A clock shows 3:15. What is the angle between the hands?", Options: []string{"0°", "7.5°", "15°", "22.5°"}, CorrectAnswer: 1, Explanation: "At 3:15, the minute hand is at 90°. The hour hand moved 7.5° past the 3, so it's at 97.5°. Angle = 7.5°."},
		{ID: 9, QuestionText: "Find the simple interest on ₹1000 at 5% per annum for 2 years.", Options: []string{"₹50", "₹100", "₹150", "₹200"}, CorrectAnswer: 1, Explanation: "SI = (P × R × T)/100 = (1000 × 5 × 2)/100 = ₹100."},
		{ID: 10, QuestionText: "The average of 5 numbers is 20. If one number is removed, the average becomes 18. What is the removed number?", Options: []string{"24", "26", "28", "30"}, CorrectAnswer: 2, Explanation: "Sum of 5 numbers = 100. Sum of 4 numbers = 72. Removed number = 100 - 72 = 28."},
	},
}
