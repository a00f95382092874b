package authn

import (
	"errors"

	mysqlerr "github.com/go-sql-driver/mysql"
)

func isDuplicateKey(err error) bool {
	var mysqlErr *mysqlerr.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
