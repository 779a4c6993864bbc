package handler

import (
	"context"
	"fmt"
	"math"

	"github.com/ogurasousui/service-award/internal/core/employee"
	"github.com/ogurasousui/service-award/internal/core/roster"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// EmployeeGrpcHandler は RosterService の gRPC 実装です。
type EmployeeGrpcHandler struct {
	svc employee.UseCase
}

var _ RosterServiceServer = (*EmployeeGrpcHandler)(nil)

// NewEmployeeGrpcHandler は EmployeeGrpcHandler を生成します。
func NewEmployeeGrpcHandler(svc employee.UseCase) *EmployeeGrpcHandler {
	return &EmployeeGrpcHandler{svc: svc}
}

// ListTeam は上長配下の社員一覧を返します。
func (h *EmployeeGrpcHandler) ListTeam(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.svc.ListTeam(ctx, employee.ListTeamInput{
		ManagerEmail:  stringField(req, "manager_email"),
		Search:        stringField(req, "search"),
		SortKey:       stringField(req, "sort_key"),
		Direction:     stringField(req, "sort_direction"),
		ToggleSortKey: stringField(req, "toggle_sort_key"),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return toListResponse(result)
}

// ListEmployees は全社員の一覧を返します。
func (h *EmployeeGrpcHandler) ListEmployees(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.svc.ListEmployees(ctx, employee.ListEmployeesInput{
		Search:        stringField(req, "search"),
		SortKey:       stringField(req, "sort_key"),
		Direction:     stringField(req, "sort_direction"),
		ToggleSortKey: stringField(req, "toggle_sort_key"),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	return toListResponse(result)
}

// GetHierarchyLevels は上長配下を階層ごとにまとめて返します。
func (h *EmployeeGrpcHandler) GetHierarchyLevels(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.svc.GetHierarchyLevels(ctx, employee.GetHierarchyLevelsInput{
		ManagerEmail: stringField(req, "manager_email"),
	})
	if err != nil {
		return nil, toStatusError(err)
	}

	levels := make([]any, 0, len(result.Levels))
	for _, lvl := range result.Levels {
		levels = append(levels, map[string]any{
			"level":     lvl.Depth,
			"employees": toEmployeeValues(lvl.Employees),
		})
	}

	return newStruct(map[string]any{
		"manager_email": result.ManagerEmail,
		"total_levels":  len(result.Levels),
		"levels":        levels,
	})
}

// GetEmployee は社員 1 件を返します。
func (h *EmployeeGrpcHandler) GetEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	id, err := int64Field(req, "id")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	found, err := h.svc.GetEmployee(ctx, employee.GetEmployeeInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}

	return newStruct(map[string]any{"employee": toEmployeeValue(*found)})
}

func toListResponse(result *employee.ListResult) (*structpb.Struct, error) {
	return newStruct(map[string]any{
		"employees":      toEmployeeValues(result.Employees),
		"total":          result.Total,
		"sort_key":       string(result.Sort.Key),
		"sort_direction": string(result.Sort.Direction),
	})
}

func toEmployeeValues(records []roster.AnnotatedRecord) []any {
	out := make([]any, 0, len(records))
	for _, rec := range records {
		out = append(out, toEmployeeValue(rec))
	}
	return out
}

func toEmployeeValue(rec roster.AnnotatedRecord) map[string]any {
	return map[string]any{
		"id":                     rec.ID,
		"employee_id":            rec.EmployeeID,
		"employee_name":          rec.Name,
		"employee_email":         rec.Email,
		"hire_date":              roster.FormatDate(rec.HireDate),
		"manager_name":           rec.ManagerName,
		"manager_email":          rec.ManagerEmail,
		"years_of_service":       rec.YearsOfService,
		"days_until_anniversary": rec.DaysUntilAnniversary,
	}
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return s, nil
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

func int64Field(req *structpb.Struct, name string) (int64, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > 1<<53 {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return int64(n.NumberValue), nil
}
