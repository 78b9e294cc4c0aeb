package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/domain/repositories"
	"quickbite.backend/pkg/logger"
	pkgredis "quickbite.backend/pkg/redis"
)

func init() {
	logger.Init("development")
}

func nowFake() time.Time { return time.Now() }

// fakeUOW runs the function directly; the repositories below are in-memory
// so there is nothing to roll back.
type fakeUOW struct {
	calls int
}

func (f *fakeUOW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// ---- users ----

type fakeUserRepo struct {
	users     map[int64]*entities.User
	nextID    int64
	failNext  error
	syncCalls []entities.IdentityLink
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*entities.User{}}
}

func (f *fakeUserRepo) takeErr() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	for _, u := range f.users {
		if u.Phone == user.Phone {
			return domainerrors.Conflict("phone", "Phone already exists")
		}
		if user.Email.Valid && u.Email.Valid && u.Email.String == user.Email.String {
			return domainerrors.Conflict("email", "Email already exists")
		}
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeUserRepo) GetByContact(ctx context.Context, contact entities.Contact) (*entities.User, error) {
	for _, u := range f.users {
		if u.Phone == contact.Phone {
			cp := *u
			return &cp, nil
		}
		if contact.Email.Valid && u.Email.Valid && u.Email.String == contact.Email.String {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeUserRepo) PromoteRole(ctx context.Context, id int64, p repositories.IdentityPromotion) error {
	u, ok := f.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.Role = p.Role
	u.Status = p.Status
	if p.Name.Valid && !u.Name.Valid {
		u.Name = p.Name
	}
	if p.Address.Valid && !u.Address.Valid {
		u.Address = p.Address
	}
	return nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id int64, status entities.UserStatus) error {
	u, ok := f.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeUserRepo) UpdateStatusForRole(ctx context.Context, id int64, role entities.Role, status entities.UserStatus) error {
	u, ok := f.users[id]
	if !ok || u.Role != role {
		return domainerrors.ErrNotFound
	}
	u.Status = status
	return nil
}

func (f *fakeUserRepo) UpdateKYC(ctx context.Context, id int64, status entities.KYCStatus) error {
	u, ok := f.users[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	u.KYCStatus = status
	return nil
}

func (f *fakeUserRepo) PatchProfileForRole(ctx context.Context, id int64, role entities.Role, name, address null.String) error {
	u, ok := f.users[id]
	if !ok || u.Role != role {
		return nil
	}
	if name.Valid {
		u.Name = name
	}
	if address.Valid {
		u.Address = address
	}
	return nil
}

func (f *fakeUserRepo) SyncStatus(ctx context.Context, link entities.IdentityLink, status entities.UserStatus) error {
	f.syncCalls = append(f.syncCalls, link)
	if link.UserID.Valid {
		if u, ok := f.users[link.UserID.Int64]; ok {
			u.Status = status
			return nil
		}
	}
	for _, u := range f.users {
		if link.Phone != "" && u.Phone == link.Phone {
			u.Status = status
			return nil
		}
	}
	for _, u := range f.users {
		if link.Email.Valid && u.Email.Valid && u.Email.String == link.Email.String {
			u.Status = status
			return nil
		}
	}
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	var out []*entities.User
	for _, u := range f.users {
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		if filter.Status != "" && string(u.Status) != filter.Status {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// ---- merchants ----

type fakeMerchantRepo struct {
	merchants map[int64]*entities.Merchant
	nextID    int64
	failNext  error
}

func newFakeMerchantRepo() *fakeMerchantRepo {
	return &fakeMerchantRepo{merchants: map[int64]*entities.Merchant{}}
}

func (f *fakeMerchantRepo) takeErr() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeMerchantRepo) Create(ctx context.Context, m *entities.Merchant) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.merchants[m.ID] = &cp
	return nil
}

func (f *fakeMerchantRepo) GetByID(ctx context.Context, id int64) (*entities.Merchant, error) {
	if m, ok := f.merchants[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeMerchantRepo) GetByUserID(ctx context.Context, userID int64) (*entities.Merchant, error) {
	for _, m := range f.merchants {
		if m.UserID.Valid && m.UserID.Int64 == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeMerchantRepo) Update(ctx context.Context, m *entities.Merchant) error {
	if _, ok := f.merchants[m.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cp := *m
	f.merchants[m.ID] = &cp
	return nil
}

func (f *fakeMerchantRepo) UpdateCode(ctx context.Context, id int64, code string) error {
	m, ok := f.merchants[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	m.MerchantCode = null.StringFrom(code)
	return nil
}

func (f *fakeMerchantRepo) UpdateStatus(ctx context.Context, id int64, status entities.MerchantStatus) error {
	m, ok := f.merchants[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeMerchantRepo) SetApproval(ctx context.Context, id int64, approved bool, status null.String) error {
	m, ok := f.merchants[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if approved {
		m.ApprovedAt = null.TimeFrom(nowFake())
	} else {
		m.ApprovedAt = null.Time{}
	}
	if status.Valid {
		m.Status = entities.MerchantStatus(status.String)
	}
	return nil
}

func (f *fakeMerchantRepo) FindConflicts(ctx context.Context, phone, email, gst, fssai string, excludeID int64) (*entities.MerchantConflicts, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	c := &entities.MerchantConflicts{}
	for _, m := range f.merchants {
		if m.ID == excludeID {
			continue
		}
		if m.Phone == phone {
			c.Phone = true
		}
		if email != "" && m.Email.Valid && m.Email.String == email {
			c.Email = true
		}
		if gst != "" && m.GST.Valid && m.GST.String == gst {
			c.GST = true
		}
		if fssai != "" && m.FSSAI == fssai {
			c.FSSAI = true
		}
	}
	return c, nil
}

func (f *fakeMerchantRepo) List(ctx context.Context, filter entities.MerchantFilter) ([]*entities.Merchant, int64, error) {
	var all []*entities.Merchant
	for _, m := range f.merchants {
		if filter.Status != "" && m.Status != entities.SafeMerchantStatus(filter.Status) {
			continue
		}
		cp := *m
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (filter.Page - 1) * filter.PageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeMerchantRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	for _, m := range f.merchants {
		if m.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMerchantRepo) SetOpen(ctx context.Context, userID int64, open bool) error {
	for _, m := range f.merchants {
		if m.UserID.Valid && m.UserID.Int64 == userID {
			m.IsOpen = open
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (f *fakeMerchantRepo) CloseAll(ctx context.Context) (int64, error) {
	var n int64
	for _, m := range f.merchants {
		if m.IsOpen {
			m.IsOpen = false
			n++
		}
	}
	return n, nil
}

func (f *fakeMerchantRepo) UpdateProfileImage(ctx context.Context, userID int64, path string) error {
	for _, m := range f.merchants {
		if m.UserID.Valid && m.UserID.Int64 == userID {
			m.ProfileImage = null.StringFrom(path)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (f *fakeMerchantRepo) CountByStatus(ctx context.Context, status entities.MerchantStatus) (int64, error) {
	if err := f.takeErr(); err != nil {
		return 0, err
	}
	var n int64
	for _, m := range f.merchants {
		if m.Status == status {
			n++
		}
	}
	return n, nil
}

// ---- riders ----

type fakeRiderRepo struct {
	riders   map[int64]*entities.Rider // keyed by user id
	users    *fakeUserRepo
	nextID   int64
	failNext error
}

func newFakeRiderRepo(users *fakeUserRepo) *fakeRiderRepo {
	return &fakeRiderRepo{riders: map[int64]*entities.Rider{}, users: users}
}

func (f *fakeRiderRepo) takeErr() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeRiderRepo) Create(ctx context.Context, rider *entities.Rider) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	if _, ok := f.riders[rider.UserID]; ok {
		return domainerrors.Conflict("user_id", "Duplicate constraint failed")
	}
	f.nextID++
	rider.ID = f.nextID
	cp := *rider
	f.riders[rider.UserID] = &cp
	return nil
}

func (f *fakeRiderRepo) GetByUserID(ctx context.Context, userID int64) (*entities.Rider, error) {
	if r, ok := f.riders[userID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakeRiderRepo) GetRow(ctx context.Context, userID int64) (*entities.RiderRow, error) {
	u, err := f.users.GetByID(ctx, userID)
	if err != nil || u.Role != entities.RoleRider {
		return nil, domainerrors.ErrNotFound
	}
	row := &entities.RiderRow{
		UserID:     u.ID,
		Name:       u.Name,
		Phone:      u.Phone,
		Email:      u.Email,
		Address:    u.Address,
		UserStatus: u.Status,
	}
	if r, ok := f.riders[userID]; ok {
		row.RiderID = null.Int64From(r.ID)
		row.Vehicle = null.StringFrom(r.Vehicle)
		row.VehicleNumber = r.VehicleNumber
		row.Area = r.Area
		row.OnlineStatus = null.StringFrom(string(r.OnlineStatus))
		row.KYCStatus = null.StringFrom(string(r.KYCStatus))
		row.ApprovalStatus = null.StringFrom(string(r.ApprovalStatus))
		row.ApprovedAt = r.ApprovedAt
	}
	return row, nil
}

func (f *fakeRiderRepo) PatchProfile(ctx context.Context, userID int64, patch entities.RiderProfilePatch) error {
	r, ok := f.riders[userID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if patch.Vehicle.Valid {
		r.Vehicle = patch.Vehicle.String
	}
	if patch.VehicleNumber.Valid {
		r.VehicleNumber = patch.VehicleNumber
	}
	if patch.LicenseNo.Valid {
		r.LicenseNo = patch.LicenseNo
	}
	if patch.Aadhaar.Valid {
		r.Aadhaar = patch.Aadhaar
	}
	if patch.Area.Valid {
		r.Area = patch.Area
	}
	return nil
}

func (f *fakeRiderRepo) PatchBank(ctx context.Context, userID int64, patch entities.RiderBankPatch) error {
	r, ok := f.riders[userID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if patch.BankName.Valid {
		r.BankName = patch.BankName
	}
	if patch.AccountNo.Valid {
		r.AccountNo = patch.AccountNo
	}
	if patch.IFSC.Valid {
		r.IFSC = patch.IFSC
	}
	if patch.UPI.Valid {
		r.UPI = patch.UPI
	}
	return nil
}

func (f *fakeRiderRepo) SetOnline(ctx context.Context, userID int64, status entities.OnlineStatus) error {
	r, ok := f.riders[userID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.OnlineStatus = status
	return nil
}

func (f *fakeRiderRepo) SetKYC(ctx context.Context, userID int64, status entities.ReviewStatus) error {
	r, ok := f.riders[userID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.KYCStatus = status
	return nil
}

func (f *fakeRiderRepo) SetApproval(ctx context.Context, userID int64, status entities.ReviewStatus, approvedAt null.Time, reason null.String) error {
	r, ok := f.riders[userID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	r.ApprovalStatus = status
	r.ApprovedAt = approvedAt
	r.RejectedReason = reason
	return nil
}

func (f *fakeRiderRepo) List(ctx context.Context, filter entities.RiderFilter) ([]*entities.RiderRow, int64, error) {
	var out []*entities.RiderRow
	for userID := range f.riders {
		row, err := f.GetRow(ctx, userID)
		if err != nil {
			continue
		}
		if filter.Status != "" && string(row.UserStatus) != filter.Status {
			continue
		}
		if filter.KYC != "" && row.KYCStatus.String != filter.KYC {
			continue
		}
		if filter.Approval != "" && row.ApprovalStatus.String != filter.Approval {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID > out[j].UserID })
	return out, int64(len(out)), nil
}

func (f *fakeRiderRepo) ExistsByUserPhone(ctx context.Context, phone string) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	for userID := range f.riders {
		if u, err := f.users.GetByID(ctx, userID); err == nil && u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRiderRepo) Count(ctx context.Context) (int64, error) {
	if err := f.takeErr(); err != nil {
		return 0, err
	}
	return int64(len(f.riders)), nil
}

// ---- settings ----

type fakeSettingsRepo struct {
	doc      *entities.AppSettings
	failNext error
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entities.AppSettings, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	if f.doc == nil {
		f.doc = entities.DefaultAppSettings()
	}
	cp := *f.doc
	return &cp, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, settings *entities.AppSettings) error {
	cp := *settings
	f.doc = &cp
	return nil
}

// ---- promotions ----

type fakePromotionRepo struct {
	promos   map[int64]*entities.Promotion
	nextID   int64
	failNext error
}

func newFakePromotionRepo() *fakePromotionRepo {
	return &fakePromotionRepo{promos: map[int64]*entities.Promotion{}}
}

func (f *fakePromotionRepo) fail() error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakePromotionRepo) Create(ctx context.Context, promo *entities.Promotion) error {
	if err := f.fail(); err != nil {
		return err
	}
	f.nextID++
	promo.ID = f.nextID
	cp := *promo
	f.promos[promo.ID] = &cp
	return nil
}

func (f *fakePromotionRepo) GetByID(ctx context.Context, id int64) (*entities.Promotion, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	if p, ok := f.promos[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domainerrors.ErrNotFound
}

func (f *fakePromotionRepo) List(ctx context.Context) ([]*entities.Promotion, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	var out []*entities.Promotion
	for _, p := range f.promos {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakePromotionRepo) Update(ctx context.Context, promo *entities.Promotion) error {
	if err := f.fail(); err != nil {
		return err
	}
	if _, ok := f.promos[promo.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	cp := *promo
	f.promos[promo.ID] = &cp
	return nil
}

func (f *fakePromotionRepo) Delete(ctx context.Context, id int64) error {
	if err := f.fail(); err != nil {
		return err
	}
	if _, ok := f.promos[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(f.promos, id)
	return nil
}

// ---- auth collaborators ----

type fakeOTPStore struct {
	codes     map[string]string
	throttled bool
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: map[string]string{}}
}

func (f *fakeOTPStore) Store(ctx context.Context, phone, codeHash string) error {
	if f.throttled {
		return pkgredis.ErrThrottled
	}
	f.codes[phone] = codeHash
	return nil
}

func (f *fakeOTPStore) Load(ctx context.Context, phone string) (string, error) {
	hash, ok := f.codes[phone]
	if !ok {
		return "", pkgredis.ErrNoCode
	}
	return hash, nil
}

func (f *fakeOTPStore) Consume(ctx context.Context, phone string) error {
	delete(f.codes, phone)
	return nil
}

type fakeTokens struct {
	err error
}

func (f *fakeTokens) GenerateToken(userID int64, phone, role string, merchantID *int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if merchantID != nil {
		return fmt.Sprintf("token-%d-%s-m%d", userID, role, *merchantID), nil
	}
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}
