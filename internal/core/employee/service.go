package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ogurasousui/service-award/internal/core/roster"
	"github.com/sirupsen/logrus"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const maxSearchLength = 200

// Service は社員の勤続情報に関するユースケースをまとめます。
type Service struct {
	repo     Repository
	clock    Clock
	tx       TransactionManager
	location *time.Location
	logger   logrus.FieldLogger
	validate *validator.Validate
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	ListTeam(ctx context.Context, in ListTeamInput) (*ListResult, error)
	ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListResult, error)
	GetHierarchyLevels(ctx context.Context, in GetHierarchyLevelsInput) (*HierarchyLevelsResult, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*roster.AnnotatedRecord, error)
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithLocation は「今日」を決めるタイムゾーンを指定します。
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger はロガーを指定します。
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager, opts ...Option) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	s := &Service{
		repo:     repo,
		clock:    clock,
		tx:       tx,
		location: time.UTC,
		logger:   logrus.StandardLogger(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListTeamInput は上長配下の一覧取得の入力です。
// ToggleSortKey を指定すると SortKey/Direction を現在の状態とみなし、列見出しのクリックと同じ規則で次の状態に切り替えます。
type ListTeamInput struct {
	ManagerEmail  string `validate:"required,email"`
	Search        string `validate:"max=200"`
	SortKey       string
	Direction     string
	ToggleSortKey string
}

// ListEmployeesInput は全社員一覧取得の入力です。
type ListEmployeesInput struct {
	Search        string `validate:"max=200"`
	SortKey       string
	Direction     string
	ToggleSortKey string
}

// GetHierarchyLevelsInput は階層別一覧取得の入力です。
type GetHierarchyLevelsInput struct {
	ManagerEmail string `validate:"required,email"`
}

// GetEmployeeInput は社員取得の入力です。
type GetEmployeeInput struct {
	ID int64 `validate:"gt=0"`
}

// ListResult は投影済みの一覧です。Total は絞り込み前の件数、Sort は適用した並び替え状態です。
type ListResult struct {
	Employees []roster.AnnotatedRecord
	Total     int
	Sort      roster.SortState
}

// HierarchyLevel は階層ごとの社員一覧です。
type HierarchyLevel struct {
	Depth     int
	Employees []roster.AnnotatedRecord
}

// HierarchyLevelsResult は階層別一覧の結果です。
type HierarchyLevelsResult struct {
	ManagerEmail string
	Levels       []HierarchyLevel
}

// ListTeam は上長配下の全階層を展開し、検索・並び替えを適用して返します。
func (s *Service) ListTeam(ctx context.Context, in ListTeamInput) (*ListResult, error) {
	in.ManagerEmail = normalizeEmail(in.ManagerEmail)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	query, err := buildQuery(in.Search, in.SortKey, in.Direction, in.ToggleSortKey)
	if err != nil {
		return nil, err
	}

	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ListReportingTo(txCtx, in.ManagerEmail)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	tree := roster.BuildTree(toRecords(employees), in.ManagerEmail)
	projected, err := roster.Project(tree, query, s.today())
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"manager_email": in.ManagerEmail,
		"total":         roster.Count(tree),
		"returned":      len(projected),
	}).Debug("team projected")

	return &ListResult{Employees: projected, Total: roster.Count(tree), Sort: query.SortState()}, nil
}

// ListEmployees は全社員を検索・並び替えして返します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListResult, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	query, err := buildQuery(in.Search, in.SortKey, in.Direction, in.ToggleSortKey)
	if err != nil {
		return nil, err
	}

	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ListAll(txCtx)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	records := toRecords(employees)
	projected, err := roster.Project(records, query, s.today())
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"total":    len(records),
		"returned": len(projected),
	}).Debug("employees projected")

	return &ListResult{Employees: projected, Total: len(records), Sort: query.SortState()}, nil
}

// GetHierarchyLevels は上長配下を階層ごとにまとめて返します。
func (s *Service) GetHierarchyLevels(ctx context.Context, in GetHierarchyLevelsInput) (*HierarchyLevelsResult, error) {
	in.ManagerEmail = normalizeEmail(in.ManagerEmail)
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ListReportingTo(txCtx, in.ManagerEmail)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	today := s.today()
	tree := roster.BuildTree(toRecords(employees), in.ManagerEmail)
	levels := roster.Levels(tree)

	result := &HierarchyLevelsResult{
		ManagerEmail: in.ManagerEmail,
		Levels:       make([]HierarchyLevel, 0, len(levels)),
	}
	for _, lvl := range levels {
		result.Levels = append(result.Levels, HierarchyLevel{
			Depth:     lvl.Depth,
			Employees: roster.Annotate(lvl.Employees, today),
		})
	}
	return result, nil
}

// GetEmployee は社員を取得し、勤続情報を付与して返します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*roster.AnnotatedRecord, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	var found *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		emp, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		found = emp
		return nil
	}); err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrEmployeeNotFound
	}

	annotated := roster.Annotate([]roster.EmployeeRecord{found.Record()}, s.today())
	return &annotated[0], nil
}

func (s *Service) today() time.Time {
	return roster.Today(s.clock.Now(), s.location)
}

func (s *Service) validateInput(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "ManagerEmail":
		return fmt.Errorf("manager_email: %w", ErrInvalidManagerEmail)
	case "Search":
		return fmt.Errorf("search longer than %d characters: %w", maxSearchLength, ErrInvalidSearch)
	case "ID":
		return fmt.Errorf("id: %w", ErrInvalidID)
	default:
		return fmt.Errorf("%s: %w", fe.Field(), err)
	}
}

func buildQuery(search, sortKey, direction, toggleKey string) (roster.Query, error) {
	key, err := roster.ParseSortKey(sortKey)
	if err != nil {
		return roster.Query{}, fmt.Errorf("sort_key %q: %w", sortKey, err)
	}
	dir, err := roster.ParseDirection(direction)
	if err != nil {
		return roster.Query{}, fmt.Errorf("sort_direction %q: %w", direction, err)
	}

	state := roster.SortState{Key: key, Direction: dir}
	if strings.TrimSpace(toggleKey) != "" {
		toggle, err := roster.ParseSortKey(toggleKey)
		if err != nil {
			return roster.Query{}, fmt.Errorf("toggle_sort_key %q: %w", toggleKey, err)
		}
		state = roster.ToggleSort(state, toggle)
	}

	return roster.Query{
		Search:    strings.TrimSpace(search),
		SortKey:   state.Key,
		Direction: state.Direction,
	}, nil
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
