package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/service-award/internal/core/employee"
	"github.com/ogurasousui/service-award/internal/core/roster"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidManagerEmail),
		errors.Is(err, employee.ErrInvalidSearch),
		errors.Is(err, roster.ErrInvalidSortKey),
		errors.Is(err, roster.ErrInvalidSortDirection):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, roster.ErrInvalidHireDate):
		return status.Error(codes.DataLoss, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
