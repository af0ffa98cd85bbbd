package repository

// TxRepos repositorios atados a una misma transacción del almacenamiento.
// Todo lo escrito a través de ellos se confirma o descarta junto.
type TxRepos struct {
	Counters  CounterRepository
	Products  ProductRepository
	Invoices  InvoiceRepository
	Movements StockMovementRepository
	History   HistoryRepository
	Business  BusinessSnapshotReader
}
