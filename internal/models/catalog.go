package models

// CatalogCourse is the presentation shape of a course listing.
type CatalogCourse struct {
	CourseID         ID      `json:"course_id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Instructor       string  `json:"instructor"`
	Category         string  `json:"category"`
	Level            string  `json:"level"`
	Price            float64 `json:"price"`
	Rating           float64 `json:"rating"`
	Image            string  `json:"image"`
	Status           string  `json:"status"`
	EnrolledStudents int     `json:"enrolled_students"`
	Revenue          float64 `json:"revenue"`
}

type CourseStats struct {
	TotalCourses  int     `json:"total_courses"`
	ActiveCourses int     `json:"active_courses"`
	TotalStudents int     `json:"total_students"`
	TotalRevenue  float64 `json:"total_revenue"`
	AverageRating float64 `json:"average_rating"`
}
