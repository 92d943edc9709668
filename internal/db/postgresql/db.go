package postgresql

import (
	"context"

	"github.com/procat-rse/procatsrv/internal/db/dbmanager"
)

type proCatDb struct {
	conn dbmanager.Conn
}

func NewProCatDb(conn dbmanager.Conn) *proCatDb {
	return &proCatDb{conn: conn}
}

func (p *proCatDb) Close(ctx context.Context) {
	p.conn.Release()
}
