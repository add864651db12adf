package handler

// --- Inventory form schemas ---

type classificationForm struct {
	Name string `form:"classification_name" validate:"required,alphanum"`
}

type vehicleForm struct {
	ID               string  `form:"vehicle_id"`
	ClassificationID string  `form:"classification_id" validate:"required"`
	Make             string  `form:"inv_make"          validate:"required"`
	Model            string  `form:"inv_model"         validate:"required"`
	Year             int     `form:"inv_year"          validate:"required,gte=1900,lte=2100"`
	Description      string  `form:"inv_description"   validate:"required"`
	Image            string  `form:"inv_image"`
	Thumbnail        string  `form:"inv_thumbnail"`
	Price            float64 `form:"inv_price"         validate:"required,gt=0"`
	Miles            int     `form:"inv_miles"         validate:"gte=0"`
	Color            string  `form:"inv_color"         validate:"required"`
}
