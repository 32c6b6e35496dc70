package service

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/biocomp/qbank-backend/internal/model"
)

// Column widths of the bounded text columns.
const (
	maxOptLabelLen      = 10
	maxMaterialTitleLen = 255
)

// nilIfBlank stores empty optional text as NULL.
func nilIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// dedupeInts keeps the first occurrence of every id.
func dedupeInts(ids []int) []int {
	if ids == nil {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func validateOptions(field string, opts []model.OptionInput) error {
	seen := make(map[string]struct{}, len(opts))
	for i, o := range opts {
		label := strings.TrimSpace(o.OptLabel)
		if label == "" {
			return invalid(fmt.Sprintf("%s[%d].opt_label", field, i), "is required")
		}
		if utf8.RuneCountInString(o.OptLabel) > maxOptLabelLen {
			return invalid(fmt.Sprintf("%s[%d].opt_label", field, i), "must be a maximum of %d characters", maxOptLabelLen)
		}
		if _, ok := seen[label]; ok {
			return invalid(fmt.Sprintf("%s[%d].opt_label", field, i), "duplicate label %q", label)
		}
		seen[label] = struct{}{}
	}
	return nil
}

// prepareCreate validates req in place. prefix names the payload position
// for sub-questions ("questions[2].").
func prepareCreate(prefix string, req *model.CreateQuestionRequest) error {
	if req.TypeID <= 0 {
		return invalid(prefix+"type_id", "is required")
	}
	if strings.TrimSpace(req.Stem) == "" {
		return invalid(prefix+"stem", "is required")
	}
	if req.SourceID != nil && *req.SourceID <= 0 {
		req.SourceID = nil
	}
	req.Answer = nilIfBlank(req.Answer)
	req.Explanation = nilIfBlank(req.Explanation)
	if err := validateOptions(prefix+"options", req.Options); err != nil {
		return err
	}
	req.TagIDs = dedupeInts(req.TagIDs)
	return nil
}

func prepareUpdate(req *model.UpdateQuestionRequest) error {
	if req.TypeID.Set && (req.TypeID.Value == nil || *req.TypeID.Value <= 0) {
		return invalid("type_id", "must be a positive id")
	}
	if req.Stem.Set && (req.Stem.Value == nil || strings.TrimSpace(*req.Stem.Value) == "") {
		return invalid("stem", "must not be empty")
	}
	if req.Answer.Set {
		req.Answer.Value = nilIfBlank(req.Answer.Value)
	}
	if req.Explanation.Set {
		req.Explanation.Value = nilIfBlank(req.Explanation.Value)
	}
	if req.SourceID.Set && req.SourceID.Value != nil && *req.SourceID.Value <= 0 {
		req.SourceID.Value = nil
	}
	if req.Options != nil {
		if err := validateOptions("options", *req.Options); err != nil {
			return err
		}
	}
	if req.TagIDs != nil {
		ids := dedupeInts(*req.TagIDs)
		req.TagIDs = &ids
	}
	return nil
}

// pageWindow validates paging and returns limit/offset.
func pageWindow(page, pageSize int) (limit, offset int, err error) {
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must be a positive integer", ErrInvalidArgument)
	}
	if pageSize < 1 {
		return 0, 0, fmt.Errorf("%w: pageSize must be a positive integer", ErrInvalidArgument)
	}
	if page-1 > math.MaxInt/pageSize {
		return 0, 0, fmt.Errorf("%w: page is out of range", ErrInvalidArgument)
	}
	return pageSize, (page - 1) * pageSize, nil
}

// checkTitle rejects a material title wider than its column.
func checkTitle(title *string) error {
	if title != nil && utf8.RuneCountInString(*title) > maxMaterialTitleLen {
		return invalid("title", "must be a maximum of %d characters", maxMaterialTitleLen)
	}
	return nil
}
