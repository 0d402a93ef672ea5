package email

const subjectWelcome = "Welcome to ShopWise"
