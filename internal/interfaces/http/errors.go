package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/garyjia/gov-travel-expense/internal/application/service"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
)

// Error codes returned in Response.Code
const (
	CodeUnknownGrade     = "UNKNOWN_GRADE"
	CodeInvalidDistance  = "INVALID_DISTANCE"
	CodeEmptyClaim       = "EMPTY_CLAIM"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodePlaceNotFound    = "PLACE_NOT_FOUND"
	CodeNoRoute          = "NO_ROUTE"
	CodeRoutingDisabled  = "ROUTING_DISABLED"
	CodeInternal         = "INTERNAL_ERROR"
	CodePageOutOfRange   = "PAGE_OUT_OF_RANGE"
	CodeUnsupportedMedia = "UNSUPPORTED_FORMAT"
)

// apiError is an error translated for the form UI
type apiError struct {
	Status  int
	Code    string
	Message string
}

// translateError maps application and domain errors to a status, code
// and Thai message. Unknown errors become 500 without detail.
func translateError(err error) apiError {
	var gradeErr *entity.UnknownGradeError
	var distErr *entity.InvalidDistanceError

	switch {
	case errors.As(err, &gradeErr):
		return apiError{http.StatusUnprocessableEntity, CodeUnknownGrade,
			fmt.Sprintf("ไม่พบระดับตำแหน่ง %q ในตารางอัตรา", gradeErr.Grade)}
	case errors.Is(err, entity.ErrUnknownGrade):
		return apiError{http.StatusUnprocessableEntity, CodeUnknownGrade, "ไม่พบระดับตำแหน่งในตารางอัตรา"}
	case errors.As(err, &distErr):
		return apiError{http.StatusUnprocessableEntity, CodeInvalidDistance,
			fmt.Sprintf("รายการพาหนะที่ %d: ระยะทางต้องไม่ติดลบ", distErr.Index+1)}
	case errors.Is(err, entity.ErrInvalidDistance):
		return apiError{http.StatusUnprocessableEntity, CodeInvalidDistance, "ระยะทางต้องไม่ติดลบ"}
	case errors.Is(err, entity.ErrEmptyClaim):
		return apiError{http.StatusUnprocessableEntity, CodeEmptyClaim, "ไม่มีรายการค่าใช้จ่ายที่เบิกได้"}
	case errors.Is(err, entity.ErrInvalidSchedule):
		return apiError{http.StatusUnprocessableEntity, CodeInvalidRequest, "วันเวลากลับต้องไม่ก่อนวันเวลาออกเดินทาง"}
	case errors.Is(err, entity.ErrNegativeAmount),
		errors.Is(err, entity.ErrInvalidNights),
		errors.Is(err, entity.ErrInvalidValue):
		return apiError{http.StatusUnprocessableEntity, CodeInvalidRequest, "ข้อมูลไม่ถูกต้อง: " + err.Error()}
	case errors.Is(err, service.ErrProfileNotFound):
		return apiError{http.StatusNotFound, CodeNotFound, "ไม่พบข้อมูลผู้เดินทาง"}
	case errors.Is(err, service.ErrDraftNotFound):
		return apiError{http.StatusNotFound, CodeNotFound, "ไม่พบแบบร่าง"}
	case errors.Is(err, port.ErrMissingPlace):
		return apiError{http.StatusBadRequest, CodeInvalidRequest, "กรุณาระบุต้นทางและปลายทาง"}
	case errors.Is(err, port.ErrPlaceNotFound):
		return apiError{http.StatusUnprocessableEntity, CodePlaceNotFound, "ไม่พบพิกัดของสถานที่ที่ระบุ"}
	case errors.Is(err, port.ErrNoRoute):
		return apiError{http.StatusUnprocessableEntity, CodeNoRoute, "ไม่สามารถคำนวณเส้นทางได้"}
	case errors.Is(err, port.ErrPageOutOfRange):
		return apiError{http.StatusNotFound, CodePageOutOfRange, "ไม่พบหน้าที่ต้องการแสดงตัวอย่าง"}
	case errors.Is(err, service.ErrUnsupportedFormat):
		return apiError{http.StatusBadRequest, CodeUnsupportedMedia, "ไม่รองรับรูปแบบเอกสารที่ระบุ"}
	case errors.Is(err, service.ErrRoutingDisabled):
		return apiError{http.StatusServiceUnavailable, CodeRoutingDisabled, "ระบบคำนวณระยะทางปิดใช้งาน"}
	default:
		return apiError{http.StatusInternalServerError, CodeInternal, "เกิดข้อผิดพลาดภายในระบบ"}
	}
}
