package employee

import "context"

// Repository は社員データ取得の抽象です。
type Repository interface {
	// ListAll は全社員を ID 順で返します。
	ListAll(ctx context.Context) ([]*Employee, error)
	// ListReportingTo は managerEmail 配下の全階層の社員を返します。
	ListReportingTo(ctx context.Context, managerEmail string) ([]*Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
}
