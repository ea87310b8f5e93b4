// service/borrowing/borrowing_service_test.go
package borrowsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Touati-Fadwa/Micro-books/model"
	borrowrepo "github.com/Touati-Fadwa/Micro-books/repository/borrowing"
	borrowsvc "github.com/Touati-Fadwa/Micro-books/service/borrowing"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	bookExistsFn    func(ctx context.Context, bookID int64) (bool, error)
	createFn        func(ctx context.Context, b *model.Borrowing) error
	returnFn        func(ctx context.Context, id int64, at time.Time) (*model.Borrowing, error)
	deleteFn        func(ctx context.Context, id int64) error
	listAllFn       func(ctx context.Context) ([]borrowrepo.ListRow, error)
	listByStudentFn func(ctx context.Context, studentID int64) ([]borrowrepo.ListRow, error)
}

func (m *repoMock) BookExists(ctx context.Context, bookID int64) (bool, error) {
	if m.bookExistsFn == nil {
		return true, nil
	}
	return m.bookExistsFn(ctx, bookID)
}
func (m *repoMock) Create(ctx context.Context, b *model.Borrowing) error { return m.createFn(ctx, b) }
func (m *repoMock) Return(ctx context.Context, id int64, at time.Time) (*model.Borrowing, error) {
	return m.returnFn(ctx, id, at)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }
func (m *repoMock) ListAll(ctx context.Context) ([]borrowrepo.ListRow, error) {
	return m.listAllFn(ctx)
}
func (m *repoMock) ListByStudent(ctx context.Context, studentID int64) ([]borrowrepo.ListRow, error) {
	return m.listByStudentFn(ctx, studentID)
}

var due = time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

func validInput() borrowsvc.CreateInput {
	return borrowsvc.CreateInput{
		BookID:       1,
		StudentID:    7,
		StudentName:  "Fadwa",
		StudentEmail: "fadwa@univ.tn",
		DueDate:      due,
	}
}

func TestCreate_Validation(t *testing.T) {
	s := borrowsvc.New(&repoMock{})
	ctx := context.Background()

	cases := []func(*borrowsvc.CreateInput){
		func(in *borrowsvc.CreateInput) { in.BookID = 0 },
		func(in *borrowsvc.CreateInput) { in.StudentID = 0 },
		func(in *borrowsvc.CreateInput) { in.StudentName = " " },
		func(in *borrowsvc.CreateInput) { in.StudentEmail = "" },
		func(in *borrowsvc.CreateInput) { in.DueDate = time.Time{} },
	}
	for _, mutate := range cases {
		in := validInput()
		mutate(&in)
		_, err := s.Create(ctx, in)
		require.Equal(t, borrowsvc.ErrBadInput, borrowsvc.Code(err))
	}
}

func TestCreate_BookNotFound(t *testing.T) {
	m := &repoMock{
		bookExistsFn: func(ctx context.Context, bookID int64) (bool, error) { return false, nil },
	}
	s := borrowsvc.New(m)
	_, err := s.Create(context.Background(), validInput())
	require.Equal(t, borrowsvc.ErrBookNotFound, borrowsvc.Code(err))
}

func TestCreate_NotAvailable(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Borrowing) error {
			return borrowrepo.ErrNoAvailableCopies
		},
	}
	s := borrowsvc.New(m)
	_, err := s.Create(context.Background(), validInput())
	require.Equal(t, borrowsvc.ErrNotAvailable, borrowsvc.Code(err))
}

func TestCreate_Success(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Borrowing) error {
			b.ID = 5
			return nil
		},
	}
	s := borrowsvc.NewWithClock(m, func() time.Time { return now })
	b, err := s.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.Equal(t, int64(5), b.ID)
	require.Equal(t, now, b.BorrowDate)
	require.Equal(t, due, b.DueDate)
	require.Equal(t, model.StatusBorrowed, b.Status)
	require.Nil(t, b.ReturnDate)
}

func TestReturn_Success(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	m := &repoMock{
		returnFn: func(ctx context.Context, id int64, at time.Time) (*model.Borrowing, error) {
			require.Equal(t, now, at)
			return &model.Borrowing{ID: id, ReturnDate: &at, Status: model.StatusReturned}, nil
		},
	}
	s := borrowsvc.NewWithClock(m, func() time.Time { return now })
	b, err := s.Return(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, b.Status)
	require.NotNil(t, b.ReturnDate)
}

func TestReturn_Twice(t *testing.T) {
	m := &repoMock{
		returnFn: func(ctx context.Context, id int64, at time.Time) (*model.Borrowing, error) {
			return nil, borrowrepo.ErrAlreadyReturned
		},
	}
	s := borrowsvc.New(m)
	_, err := s.Return(context.Background(), 5)
	require.Equal(t, borrowsvc.ErrAlreadyReturned, borrowsvc.Code(err))
}

func TestReturn_NotFound(t *testing.T) {
	m := &repoMock{
		returnFn: func(ctx context.Context, id int64, at time.Time) (*model.Borrowing, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := borrowsvc.New(m)
	_, err := s.Return(context.Background(), 404)
	require.Equal(t, borrowsvc.ErrNotFound, borrowsvc.Code(err))
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) error { return sql.ErrNoRows },
	}
	s := borrowsvc.New(m)
	err := s.Delete(context.Background(), 404)
	require.Equal(t, borrowsvc.ErrNotFound, borrowsvc.Code(err))
}

func sampleRow() borrowrepo.ListRow {
	cover := "cover.png"
	return borrowrepo.ListRow{
		Borrowing: model.Borrowing{
			ID:           9,
			BookID:       2,
			StudentID:    7,
			StudentName:  "Fadwa",
			StudentEmail: "fadwa@univ.tn",
			Status:       model.StatusBorrowed,
		},
		BookTitle:  "Test Book",
		BookAuthor: "Someone",
		BookCover:  &cover,
	}
}

func TestListAll_IncludesStudent(t *testing.T) {
	m := &repoMock{
		listAllFn: func(ctx context.Context) ([]borrowrepo.ListRow, error) {
			return []borrowrepo.ListRow{sampleRow()}, nil
		},
	}
	s := borrowsvc.New(m)
	rows, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Test Book", rows[0].Book.Title)
	require.NotNil(t, rows[0].Student)
	require.Equal(t, "Fadwa", rows[0].Student.Name)
	require.Equal(t, "fadwa@univ.tn", rows[0].Student.Email)
}

func TestListByStudent_OmitsStudent(t *testing.T) {
	m := &repoMock{
		listByStudentFn: func(ctx context.Context, studentID int64) ([]borrowrepo.ListRow, error) {
			require.Equal(t, int64(7), studentID)
			return []borrowrepo.ListRow{sampleRow()}, nil
		},
	}
	s := borrowsvc.New(m)
	rows, err := s.ListByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Nil(t, rows[0].Student)
	require.Equal(t, "Someone", rows[0].Book.Author)
}
